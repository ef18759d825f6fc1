// Package bolt stores ledger blobs in a single bbolt bucket.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BucketLedger holds every key written by the ledger.
const BucketLedger = "ledger"

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// Open creates the database file if needed and initializes the bucket.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketLedger)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", BucketLedger, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get retrieves the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLedger))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketLedger)
		}

		// The slice is only valid during the transaction; string() copies it.
		if data := b.Get([]byte(key)); data != nil {
			value, found = string(data), true
		}
		return nil
	})
	return value, found, err
}

// Set stores value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketLedger))
		if b == nil {
			return fmt.Errorf("bucket %s not found", BucketLedger)
		}

		return b.Put([]byte(key), []byte(value))
	})
}
