package store

import (
	"database/sql"
	"fmt"

	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/go-sql-driver/mysql"
)

// MySQL is a durable Store shared across machines, for an operator running
// several flowrun instances against the same library set.
type MySQL struct {
	*sqlStore
}

// NewMySQL opens a MySQL-backed Store using dsn (go-sql-driver/mysql DSN
// syntax, e.g. "user:pass@tcp(host:3306)/dbname").
func NewMySQL(dsn string) (*MySQL, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open mysql: %w", err)
	}
	s, err := newSQLStore(db, "mysql")
	if err != nil {
		db.Close()
		return nil, err
	}
	return &MySQL{sqlStore: s}, nil
}
