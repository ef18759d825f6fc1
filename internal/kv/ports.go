// Package kv defines the durable key-value medium the ledger persists into.
package kv

import "context"

type (
	// Store reads and writes whole string blobs by key. A missing key is
	// reported with ok == false and a nil error.
	Store interface {
		Get(ctx context.Context, key string) (value string, ok bool, err error)
		Set(ctx context.Context, key, value string) error
	}

	// Closer is implemented by stores that hold an open file or connection.
	Closer interface {
		Close() error
	}
)

// Close releases s if it owns resources.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
