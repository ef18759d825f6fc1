// Package stats derives the dashboard figures from a ledger snapshot.
package stats

import (
	"time"

	"financetracker/internal/core"
)

// ComputeMonthlyStats totals the expenses and incomes dated in the calendar
// month of now. Record dates are read in now's location, so passing
// time.Now() gives local-time month boundaries.
func ComputeMonthlyStats(expenses []core.Expense, incomes []core.Income, now time.Time) core.MonthlyStats {
	s := core.NewMonthlyStats(now.Year(), now.Month())

	for _, e := range expenses {
		if !InMonth(e.Date, now) {
			continue
		}
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		s.ExpensesByCategory[e.Category] = s.ExpensesByCategory[e.Category].Add(e.Amount)
	}
	for _, i := range incomes {
		if InMonth(i.Date, now) {
			s.TotalIncome = s.TotalIncome.Add(i.Amount)
		}
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// InMonth reports whether t falls in the same calendar month and year as now,
// judged in now's location.
func InMonth(t, now time.Time) bool {
	local := t.In(now.Location())
	return local.Year() == now.Year() && local.Month() == now.Month()
}

// MonthBounds returns the first instant of now's month and the first instant
// of the following month.
func MonthBounds(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// MonthLabel is the dashboard caption, e.g. "October 2026".
func MonthLabel(now time.Time) string {
	return now.Format("January 2006")
}
