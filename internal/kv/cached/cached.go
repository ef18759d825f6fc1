// Package cached fronts a kv.Store with an in-process ristretto cache.
// Writes go through to the wrapped store before the cache is updated, so the
// durable medium stays the source of truth.
package cached

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"financetracker/internal/kv"
)

type Store struct {
	next  kv.Store
	cache *ristretto.Cache[string, string]
}

// New wraps next with a cache holding at most maxItems keys.
func New(next kv.Store, maxItems int64) (*Store, error) {
	if maxItems < 1 {
		maxItems = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxItems * 10, // number of keys to track frequency of
		MaxCost:     maxItems,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Store{next: next, cache: cache}, nil
}

// Get serves key from the cache, falling back to the wrapped store.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, true, nil
	}
	v, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	s.cache.Set(key, v, 1)
	return v, true, nil
}

// Set writes through to the wrapped store, then refreshes the cache.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		s.cache.Del(key)
		return err
	}
	s.cache.Set(key, value, 1)
	// Make the new value visible to the next Get.
	s.cache.Wait()
	return nil
}

// Close stops the cache and closes the wrapped store.
func (s *Store) Close() error {
	s.cache.Close()
	return kv.Close(s.next)
}
