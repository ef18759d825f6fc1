package core

import "time"

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Amount   Money    `json:"amount"`
}

// MonthlyStats summarizes one calendar month of the ledger. It is derived,
// never stored.
type MonthlyStats struct {
	Year               int                `json:"year"`
	Month              time.Month         `json:"month"`
	TotalExpenses      Money              `json:"totalExpenses"`
	TotalIncome        Money              `json:"totalIncome"`
	Balance            Money              `json:"balance"`
	ExpensesByCategory map[Category]Money `json:"expensesByCategory"`
}

// NewMonthlyStats returns empty stats with every category present at zero.
func NewMonthlyStats(year int, month time.Month) MonthlyStats {
	byCat := make(map[Category]Money, len(categories))
	for _, c := range categories {
		byCat[c] = Money{}
	}
	return MonthlyStats{Year: year, Month: month, ExpensesByCategory: byCat}
}

// Breakdown lists every category in display order, zeros included.
func (s MonthlyStats) Breakdown() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryAmount{Category: c, Label: c.Label(), Amount: s.ExpensesByCategory[c]})
	}
	return out
}

// ChartData lists only the categories that have spending this month.
func (s MonthlyStats) ChartData() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(categories))
	for _, ca := range s.Breakdown() {
		if ca.Amount.Cents > 0 {
			out = append(out, ca)
		}
	}
	return out
}
