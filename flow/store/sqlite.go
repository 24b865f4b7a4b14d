package store

import (
	"database/sql"
	"fmt"

	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "modernc.org/sqlite"
)

// Sqlite is a durable, single-file Store, the default choice for a
// standalone flowrun install that wants the cache to survive a restart
// without standing up a database server.
type Sqlite struct {
	*sqlStore
}

// NewSqlite opens (creating if necessary) a sqlite database at path.
func NewSqlite(path string) (*Sqlite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	s, err := newSQLStore(db, "sqlite3")
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Sqlite{sqlStore: s}, nil
}
