package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"financetracker/internal/core"
	"financetracker/internal/ledger"
	"financetracker/internal/report"
	"financetracker/internal/stats"
)

type incomeFlags struct {
	amount string
	source string
	date   string
}

func (f *incomeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount in rupees, e.g. 1000")
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "where the money came from")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD or RFC 3339 (default now)")
}

func (f *incomeFlags) apply(cmd *cobra.Command, base core.IncomeInput, store *ledger.Store) (core.IncomeInput, error) {
	in := base
	if cmd.Flags().Changed("amount") {
		m, err := core.NewMoney(f.amount)
		if err != nil {
			return in, err
		}
		in.Amount = m
	}
	if cmd.Flags().Changed("source") {
		in.Source = f.source
	}
	if cmd.Flags().Changed("date") {
		d, err := core.ParseDate(f.date, store.Now().Location())
		if err != nil {
			return in, err
		}
		in.Date = d
	}
	return in, nil
}

func newIncomeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "income",
		Aliases: []string{"incomes"},
		Short:   "Manage incomes",
	}
	cmd.AddCommand(
		newIncomeAddCmd(a),
		newIncomeListCmd(a),
		newIncomeEditCmd(a),
		newIncomeDeleteCmd(a),
	)
	return cmd
}

func newIncomeAddCmd(a *app) *cobra.Command {
	var f incomeFlags

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record an income",
		Example: `  tracker income add --amount 1000 --source Freelance`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				in, err := f.apply(cmd, core.IncomeInput{}, store)
				if err != nil {
					return err
				}
				i, err := store.AddIncome(cmd.Context(), in)
				if err != nil {
					return err
				}
				return report.Incomes(cmd.OutOrStdout(), []core.Income{i}, store.Now().Location())
			})
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func newIncomeListCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incomes, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				list := store.Incomes()
				if month != "" {
					ref, err := parseMonthFlag(month, store.Now())
					if err != nil {
						return err
					}
					filtered := list[:0]
					for _, i := range list {
						if stats.InMonth(i.Date, ref) {
							filtered = append(filtered, i)
						}
					}
					list = filtered
				}
				return report.Incomes(cmd.OutOrStdout(), list, store.Now().Location())
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only show incomes in this month (YYYY-MM)")
	return cmd
}

func newIncomeEditCmd(a *app) *cobra.Command {
	var f incomeFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				current, ok := store.Income(id)
				if !ok {
					return fmt.Errorf("income %q not found", id)
				}
				in, err := f.apply(cmd, current.Input(), store)
				if err != nil {
					return err
				}
				if _, err := store.UpdateIncome(cmd.Context(), id, in); err != nil {
					return err
				}
				updated, _ := store.Income(id)
				return report.Incomes(cmd.OutOrStdout(), []core.Income{updated}, store.Now().Location())
			})
		},
	}

	f.register(cmd)
	return cmd
}

func newIncomeDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an income",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				found, err := store.DeleteIncome(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No income with id %s.\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted income %s.\n", id)
				return nil
			})
		},
	}
}
