package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"financetracker/internal/cli"
	apphttp "financetracker/internal/http"
	"financetracker/internal/ledger"
	"financetracker/internal/log"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger as a local JSON API",
		Long: `Serve the ledger over HTTP until SIGINT or SIGTERM.

Example:
  tracker serve --port 8081`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Port
			}
			ctx, stop := cli.SignalContext(cmd.Context(), a.logger)
			defer stop()

			return a.withLedger(ctx, func(store *ledger.Store) error {
				srv := apphttp.NewServer(":"+port, store, a.logger.WithComponent(log.ComponentHTTP),
					apphttp.WithRateLimit(a.cfg.RateLimitPerMinute))
				return runServer(ctx, srv, a.logger)
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default from PORT)")
	return cmd
}

// runServer serves until ctx is cancelled or the listener fails, then shuts
// the server down.
func runServer(ctx context.Context, srv *apphttp.Server, logger *log.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting tracker server", "addr", srv.Addr, log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
