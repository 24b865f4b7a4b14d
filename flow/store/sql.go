package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// sqlStore is the shared goqu-backed implementation behind Sqlite and
// MySQL: both dialects store one row per URL, msgpack-encoding the whole
// Entry into a single payload column rather than mapping every field to its
// own column, since the cache is read/written whole and never queried by
// individual field.
type sqlStore struct {
	db      *sql.DB
	dialect goqu.DialectWrapper
	table   string
}

const cacheTable = "flowrun_cache"

func newSQLStore(db *sql.DB, dialectName string) (*sqlStore, error) {
	s := &sqlStore{db: db, dialect: goqu.Dialect(dialectName), table: cacheTable}
	if _, err := db.Exec(fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (url TEXT PRIMARY KEY, payload BLOB NOT NULL)`, cacheTable,
	)); err != nil {
		return nil, fmt.Errorf("store: create table: %w", err)
	}
	return s, nil
}

func (s *sqlStore) Get(ctx context.Context, url string) (Entry, error) {
	query, args, err := s.dialect.From(s.table).Select("payload").Where(goqu.Ex{"url": url}).ToSQL()
	if err != nil {
		return Entry{}, err
	}
	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	var e Entry
	if err := msgpack.Unmarshal(payload, &e); err != nil {
		return Entry{}, fmt.Errorf("store: decode entry: %w", err)
	}
	return e, nil
}

func (s *sqlStore) Put(ctx context.Context, entry Entry) error {
	payload, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("store: encode entry: %w", err)
	}

	insert, _, err := s.dialect.Insert(s.table).
		Rows(goqu.Record{"url": entry.URL, "payload": payload}).
		ToSQL()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, insert); err == nil {
		return nil
	}

	update, args, err := s.dialect.Update(s.table).
		Set(goqu.Record{"payload": payload}).
		Where(goqu.Ex{"url": entry.URL}).
		ToSQL()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, update, args...)
	return err
}

func (s *sqlStore) Close() error { return s.db.Close() }
