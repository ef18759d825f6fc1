package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"financetracker/internal/core"
	"financetracker/internal/ledger"
	"financetracker/internal/report"
	"financetracker/internal/stats"
)

type expenseFlags struct {
	amount      string
	description string
	category    string
	date        string
}

func (f *expenseFlags) register(cmd *cobra.Command, defaultCategory string) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount in rupees, e.g. 49.99")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "what the money was spent on")
	cmd.Flags().StringVarP(&f.category, "category", "c", defaultCategory, "one of "+categoryList())
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD or RFC 3339 (default now)")
}

func categoryList() string {
	names := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

// apply overlays the flags the user set on base.
func (f *expenseFlags) apply(cmd *cobra.Command, base core.ExpenseInput, store *ledger.Store) (core.ExpenseInput, error) {
	in := base
	if cmd.Flags().Changed("amount") {
		m, err := core.NewMoney(f.amount)
		if err != nil {
			return in, err
		}
		in.Amount = m
	}
	if cmd.Flags().Changed("description") {
		in.Description = f.description
	}
	if cmd.Flags().Changed("category") || in.Category == "" {
		c, err := core.ParseCategory(f.category)
		if err != nil {
			return in, err
		}
		in.Category = c
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

func newExpenseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Manage expenses",
	}
	cmd.AddCommand(
		newExpenseAddCmd(a),
		newExpenseListCmd(a),
		newExpenseEditCmd(a),
		newExpenseDeleteCmd(a),
	)
	return cmd
}

func newExpenseAddCmd(a *app) *cobra.Command {
	var f expenseFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Example: `  tracker expense add --amount 50 --description Lunch --category food
  tracker expense add --amount 1200 -d "Electricity" -c utilities --date 2026-10-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				in, err := f.apply(cmd, core.ExpenseInput{}, store)
				if err != nil {
					return err
				}
				e, err := store.AddExpense(cmd.Context(), in)
				if err != nil {
					return err
				}
				return report.Expenses(cmd.OutOrStdout(), []core.Expense{e}, store.Now().Location())
			})
		},
	}

	f.register(cmd, string(core.Other))
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newExpenseListCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				list := store.Expenses()
				if month != "" {
					ref, err := parseMonthFlag(month, store.Now())
					if err != nil {
						return err
					}
					filtered := list[:0]
					for _, e := range list {
						if stats.InMonth(e.Date, ref) {
							filtered = append(filtered, e)
						}
					}
					list = filtered
				}
				return report.Expenses(cmd.OutOrStdout(), list, store.Now().Location())
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only show expenses in this month (YYYY-MM)")
	return cmd
}

func newExpenseEditCmd(a *app) *cobra.Command {
	var f expenseFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an expense",
		Long: `Change fields of an expense. Fields whose flags are not given keep
their current values.`,
		Example: `  tracker expense edit 3f2a... --amount 75.50 --category entertainment`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				current, ok := store.Expense(id)
				if !ok {
					return fmt.Errorf("expense %q not found", id)
				}
				in, err := f.apply(cmd, current.Input(), store)
				if err != nil {
					return err
				}
				if _, err := store.UpdateExpense(cmd.Context(), id, in); err != nil {
					return err
				}
				updated, _ := store.Expense(id)
				return report.Expenses(cmd.OutOrStdout(), []core.Expense{updated}, store.Now().Location())
			})
		},
	}

	f.register(cmd, string(core.Other))
	return cmd
}

func newExpenseDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.withLedger(cmd.Context(), func(store *ledger.Store) error {
				found, err := store.DeleteExpense(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No expense with id %s.\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %s.\n", id)
				return nil
			})
		},
	}
}
