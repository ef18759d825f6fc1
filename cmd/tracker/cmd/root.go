// Package cmd provides CLI commands for tracker.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"financetracker/internal/cli"
	"financetracker/internal/config"
	"financetracker/internal/ledger"
	"financetracker/internal/log"
)

// app carries the state shared by every subcommand once the root command
// has loaded configuration.
type app struct {
	cfgFile string
	debug   bool

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tracker",
		Short: "Track personal expenses and incomes",
		Long: `tracker records expenses and incomes in a local ledger and
summarizes the current month.

Example:
  tracker expense add --amount 50 --description Lunch --category food
  tracker income add --amount 1000 --source Freelance
  tracker dashboard
  tracker serve`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.LoadEnvFile()

			cfg, err := cli.LoadConfig(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cli.SetupLogger(cfg, a.debug, os.Stderr)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file (environment overrides it)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newExpenseCmd(a),
		newIncomeCmd(a),
		newDashboardCmd(a),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// withLedger opens the configured ledger for the duration of fn.
func (a *app) withLedger(ctx context.Context, fn func(*ledger.Store) error) (err error) {
	store, cleanup, err := cli.OpenLedger(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if cleanup == nil {
			return
		}
		if cerr := cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("close backend: %w", cerr)
		}
	}()
	return fn(store)
}

// parseMonthFlag reads a YYYY-MM month in the location of now. An empty
// value selects the month of now.
func parseMonthFlag(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	t, err := time.ParseInLocation("2006-01", value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: use YYYY-MM", value)
	}
	if t.Year() == now.Year() && t.Month() == now.Month() {
		return now, nil
	}
	return t.Add(12 * time.Hour), nil
}
