// Package sqlite stores ledger blobs in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db      *sql.DB
	queries *Queries
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db, queries: New(db)}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Get implements kv.Store
func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.queries.GetEntry(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get entry %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements kv.Store
func (r *Repository) Set(ctx context.Context, key, value string) error {
	if err := r.queries.UpsertEntry(ctx, key, value); err != nil {
		return fmt.Errorf("upsert entry %s: %w", key, err)
	}

	slog.DebugContext(ctx, "Entry saved to SQLite", "key", key, "bytes", len(value))
	return nil
}
