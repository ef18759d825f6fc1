package backend

import (
	"context"
	"fmt"

	"financetracker/internal/kv/bolt"
	"financetracker/internal/kv/cached"
	"financetracker/internal/kv/memory"
	"financetracker/internal/kv/sqlite"
	"financetracker/internal/ledger"
	"financetracker/internal/log"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Wrap(nil, log.ComponentBackend)
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		result *BackendResult
		err    error
	)
	switch config.Type {
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(ctx, config)
	case BoltBackend:
		result, err = f.createBoltBackend(ctx, config)
	case MemoryBackend:
		result, err = f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if config.CacheEnabled {
		return f.wrapCache(ctx, result, config.CacheMaxItems)
	}
	return result, nil
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized SQLite backend", log.FieldBackend, SQLiteBackend.String(), "db_path", config.SQLiteDBPath)

	return &BackendResult{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createBoltBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := bolt.Open(config.BoltDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bolt store: %w", err)
	}

	f.logger.InfoContext(ctx, "Initialized bolt backend", log.FieldBackend, BoltBackend.String(), "db_path", config.BoltDBPath)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data" // Default directory
	}

	store := memory.NewFromDir(dataDir, ledger.ExpensesKey, ledger.IncomesKey)

	f.logger.InfoContext(ctx, "Initialized memory backend", log.FieldBackend, MemoryBackend.String(), "data_directory", dataDir)

	return &BackendResult{
		Store:   store,
		Cleanup: nil, // No cleanup needed for memory backend
	}, nil
}

// wrapCache puts a read cache in front of result. Closing the cache also
// closes the wrapped store, so the cleanup func is replaced rather than
// chained.
func (f *DefaultFactory) wrapCache(ctx context.Context, result *BackendResult, maxItems int64) (*BackendResult, error) {
	store, err := cached.New(result.Store, maxItems)
	if err != nil {
		if result.Cleanup != nil {
			_ = result.Cleanup()
		}
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	f.logger.InfoContext(ctx, "Enabled read cache", "max_items", maxItems)

	return &BackendResult{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

// Close runs the cleanup func of r if there is one.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}
