package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStoreGetSet(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "expenses"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "expenses", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "expenses")
	if err != nil || !ok || v != "[]" {
		t.Fatalf("unexpected get: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := s.Set(ctx, "expenses", `[{"id":"a"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, "expenses"); v != `[{"id":"a"}]` {
		t.Fatalf("overwrite not visible: %q", v)
	}
}

func TestNewFromDirSeeds(t *testing.T) {
	dir := t.TempDir()
	// No files -> empty store
	s := NewFromDir(dir, "expenses", "incomes")
	if keys := s.Keys(); len(keys) != 0 {
		t.Fatalf("expected empty store, got %v", keys)
	}

	if err := os.WriteFile(filepath.Join(dir, "incomes.json"), []byte(`[{"id":"x"}]`), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	s = NewFromDir(dir, "expenses", "incomes")
	if _, ok, _ := s.Get(context.Background(), "expenses"); ok {
		t.Fatalf("expenses should be absent")
	}
	v, ok, _ := s.Get(context.Background(), "incomes")
	if !ok || v != `[{"id":"x"}]` {
		t.Fatalf("unexpected incomes seed: %q", v)
	}
}
