package cmd

import (
	"github.com/spf13/cobra"

	"financetracker/internal/ledger"
	"financetracker/internal/report"
)

func newDashboardCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"stats"},
		Short:   "Show totals and spending by category for a month",
		Example: `  tracker dashboard
  tracker dashboard --month 2026-09`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				ref, err := parseMonthFlag(month, store.Now())
				if err != nil {
					return err
				}
				return report.Dashboard(cmd.OutOrStdout(), store.MonthlyStats(ref), ref)
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to summarize as YYYY-MM (default current month)")
	return cmd
}
