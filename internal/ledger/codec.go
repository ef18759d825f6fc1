package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"financetracker/internal/core"
	"financetracker/internal/kv"
	"financetracker/internal/log"
)

type record interface {
	Validate() error
}

func expenseID(e core.Expense) string { return e.ID }

func incomeID(i core.Income) string { return i.ID }

// load decodes the collection stored under key and validates every record.
func load[T record](ctx context.Context, store kv.Store, key string, idOf func(T) string) ([]T, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: key %q: %v", ErrCorruptData, key, err)
	}

	seen := make(map[string]struct{}, len(out))
	for i, r := range out {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: key %q record %d: %v", ErrCorruptData, key, i, err)
		}
		id := idOf(r)
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: key %q record %d: duplicate id %s", ErrCorruptData, key, i, id)
		}
		seen[id] = struct{}{}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// persist writes the full collection under key.
func (s *Store) persist(ctx context.Context, key string, list any) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersist, key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist collection",
			log.FieldKey, key, log.FieldOperation, log.OpPersist, log.FieldError, err)
		return fmt.Errorf("%w: write %s: %w", ErrPersist, key, err)
	}
	return nil
}

func prepend[T any](list []T, r T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, r)
	return append(out, list...)
}

func indexOf[T any](list []T, id string, idOf func(T) string) int {
	for i, r := range list {
		if idOf(r) == id {
			return i
		}
	}
	return -1
}

func replaceAt[T any](list []T, i int, r T) []T {
	out := append([]T(nil), list...)
	out[i] = r
	return out
}

func removeAt[T any](list []T, i int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
