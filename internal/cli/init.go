// Package cli provides common CLI initialization utilities shared by the
// tracker subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"financetracker/internal/backend"
	"financetracker/internal/config"
	"financetracker/internal/ledger"
	"financetracker/internal/log"
)

// SetupLogger initializes structured logging at the configured level, or at
// debug when debug is set, and installs it as the default logger.
func SetupLogger(cfg *config.Config, debug bool, out io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level, Component: log.ComponentCLI, Output: out})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig reads the optional YAML file at path, applies the environment
// on top and validates the result.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clock returns the wall clock in the configured timezone.
func Clock(cfg *config.Config) (func() time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

// OpenLedger builds the configured backend and loads the ledger from it.
// The returned cleanup func releases the backend and must be called once the
// ledger is no longer used.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*ledger.Store, backend.CleanupFunc, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	result, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend)).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, err
	}

	clock, err := Clock(cfg)
	if err != nil {
		_ = result.Close()
		return nil, nil, err
	}

	store, err := ledger.Open(ctx, result.Store,
		ledger.WithClock(clock),
		ledger.WithLogger(logger.WithComponent(log.ComponentLedger)),
	)
	if err != nil {
		_ = result.Close()
		return nil, nil, fmt.Errorf("load ledger: %w", err)
	}
	return store, result.Close, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM. The stop
// func releases the signal handler.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
