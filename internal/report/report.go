// Package report renders the ledger for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"financetracker/internal/core"
	"financetracker/internal/stats"
)

const (
	dateLayout = "Jan 2, 2006"
	barWidth   = 30
	textWidth  = 32
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa"))
)

// Dashboard prints the month caption, the three totals and one bar per
// category with spending.
func Dashboard(w io.Writer, st core.MonthlyStats, now time.Time) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(stats.MonthLabel(now)) + "\n\n")

	balanceStyle := positiveStyle
	if st.Balance.IsNegative() {
		balanceStyle = negativeStyle
	}
	rows := [][2]string{
		{"Income", st.TotalIncome.FormatINR()},
		{"Expenses", st.TotalExpenses.FormatINR()},
		{"Balance", balanceStyle.Render(st.Balance.FormatINR())},
	}
	for _, r := range rows {
		b.WriteString("  " + padRight(r[0], 10) + padLeft(r[1], 14) + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Spending by category") + "\n")
	chart := st.ChartData()
	if len(chart) == 0 {
		b.WriteString("  " + mutedStyle.Render("No expenses this month.") + "\n")
	}
	var maxCents int64
	for _, ca := range chart {
		maxCents = max(maxCents, ca.Amount.Cents)
	}
	for _, ca := range chart {
		b.WriteString("  " + padRight(ca.Label, 16) +
			padRight(barStyle.Render(bar(ca.Amount.Cents, maxCents)), barWidth+2) +
			padLeft(ca.Amount.FormatINR(), 14) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// bar scales cents against maxCents; any spending gets at least one cell.
func bar(cents, maxCents int64) string {
	if maxCents <= 0 || cents <= 0 {
		return ""
	}
	n := int((cents*barWidth + maxCents/2) / maxCents)
	n = min(max(n, 1), barWidth)
	return strings.Repeat("█", n)
}

// Expenses prints the expenses as a table, most recent first as given.
// Dates are shown in loc, the zone months are filtered in.
func Expenses(w io.Writer, list []core.Expense, loc *time.Location) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No expenses recorded."))
		return err
	}

	t := newTable("DATE", "AMOUNT", "CATEGORY", "DESCRIPTION", "ID")
	for _, e := range list {
		t.add(formatDate(e.Date, loc), e.Amount.FormatINR(), e.Category.Label(),
			ansi.Truncate(e.Description, textWidth, "…"), e.ID)
	}
	return t.write(w)
}

// Incomes prints the incomes as a table, with dates in loc.
func Incomes(w io.Writer, list []core.Income, loc *time.Location) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No incomes recorded."))
		return err
	}

	t := newTable("DATE", "AMOUNT", "SOURCE", "ID")
	for _, i := range list {
		t.add(formatDate(i.Date, loc), i.Amount.FormatINR(),
			ansi.Truncate(i.Source, textWidth, "…"), i.ID)
	}
	return t.write(w)
}

func formatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}

type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// write pads every column to its widest cell, measured in terminal cells so
// multi-byte symbols like ₹ line up.
func (t *table) write(w io.Writer) error {
	widths := make([]int, len(t.header))
	for _, row := range append([][]string{t.header}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], ansi.StringWidth(cell))
		}
	}

	var b strings.Builder
	line := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				parts[i] = cell
			} else {
				parts[i] = padRight(cell, widths[i])
			}
		}
		s := strings.Join(parts, "  ")
		if style != nil {
			s = style.Render(s)
		}
		b.WriteString(s + "\n")
	}

	line(t.header, &headerStyle)
	for _, row := range t.rows {
		line(row, nil)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func padRight(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
