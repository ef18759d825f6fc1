package http

import (
	"net/http"

	"financetracker/internal/core"
	"financetracker/internal/stats"
)

type formattedTotals struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	Balance       string `json:"balance"`
}

type dashboardResponse struct {
	Month     string                `json:"month"`
	Stats     core.MonthlyStats     `json:"stats"`
	Breakdown []core.CategoryAmount `json:"breakdown"`
	Chart     []core.CategoryAmount `json:"chart"`
	Formatted formattedTotals       `json:"formatted"`
}

// handleDashboard returns the stats of the current month, or of the month
// selected with the year and month query parameters.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now, err := parseMonth(r.URL.Query(), s.ledger.Now())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	st := s.ledger.MonthlyStats(now)
	writeJSON(w, http.StatusOK, dashboardResponse{
		Month:     stats.MonthLabel(now),
		Stats:     st,
		Breakdown: st.Breakdown(),
		Chart:     st.ChartData(),
		Formatted: formattedTotals{
			TotalIncome:   st.TotalIncome.FormatINR(),
			TotalExpenses: st.TotalExpenses.FormatINR(),
			Balance:       st.Balance.FormatINR(),
		},
	})
}
