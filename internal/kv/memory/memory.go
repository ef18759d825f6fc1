package memory

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	mu   sync.Mutex
	data map[string]string
}

func New() *Store {
	return &Store{data: make(map[string]string)}
}

// NewFromDir seeds the store with <key>.json files found in base, one per
// key. Missing files are skipped; the store starts empty for them.
func NewFromDir(base string, keys ...string) *Store {
	s := New()
	for _, key := range keys {
		raw, err := os.ReadFile(filepath.Join(base, key+".json"))
		if err != nil || len(raw) == 0 {
			continue
		}
		s.data[key] = string(raw)
	}
	return s
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set replaces the value stored under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Keys lists the stored keys, mostly for tests.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, k)
	}
	return out
}
