package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS kv (
		"key" TEXT PRIMARY KEY,
		"value" BLOB NOT NULL
	);
`

// SQLiteMedium persists the payload as a single row in a sqlite
// key-value table.
type SQLiteMedium struct {
	db  *sql.DB
	key string
}

func NewSQLiteMedium(path, key string) (*SQLiteMedium, error) {
	if path == "" {
		return nil, fmt.Errorf("store: sqlite medium path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create kv table: %w", err)
	}

	return &SQLiteMedium{db: db, key: key}, nil
}

func (m *SQLiteMedium) Read(ctx context.Context) ([]byte, bool, error) {
	var data []byte
	err := m.db.QueryRowContext(ctx,
		`SELECT "value" FROM kv WHERE "key" = ?`, m.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: read kv row: %w", err)
	}
	return data, true, nil
}

func (m *SQLiteMedium) Write(ctx context.Context, data []byte) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO kv ("key", "value") VALUES (?, ?)
		 ON CONFLICT("key") DO UPDATE SET "value" = excluded."value"`,
		m.key, data)
	if err != nil {
		return fmt.Errorf("store: write kv row: %w", err)
	}
	return nil
}

func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}
