package sqlite

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const getEntry = `SELECT value FROM kv_entries WHERE key = ?`

func (q *Queries) GetEntry(ctx context.Context, key string) (string, error) {
	row := q.db.QueryRowContext(ctx, getEntry, key)
	var value string
	err := row.Scan(&value)
	return value, err
}

const upsertEntry = `INSERT INTO kv_entries (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

func (q *Queries) UpsertEntry(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, upsertEntry, key, value)
	return err
}
