package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "financetracker/internal/http"
	"financetracker/internal/log"
)

// useBolt points the CLI at a fresh bolt file for the duration of the test.
func useBolt(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.bolt")
	t.Setenv("DATA_BACKEND", "bolt")
	t.Setenv("BOLT_DB_PATH", path)
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CACHE_ENABLED", "false")
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return ansi.Strip(out.String()), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

// lastID returns the ID column of the last table row in out.
func lastID(t *testing.T, out string) string {
	t.Helper()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2, out)
	fields := strings.Fields(lines[len(lines)-1])
	require.NotEmpty(t, fields)
	return fields[len(fields)-1]
}

func TestExpenseCommands(t *testing.T) {
	useBolt(t)

	out := mustRun(t, "expense", "add", "--amount", "50", "-d", "Lunch", "-c", "food", "--date", "2026-10-02")
	assert.Contains(t, out, "₹50.00")
	assert.Contains(t, out, "Oct 2, 2026")
	id := lastID(t, out)

	out = mustRun(t, "expense", "edit", id, "--amount", "75.50")
	assert.Contains(t, out, "₹75.50")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "Oct 2, 2026")

	mustRun(t, "expense", "add", "--amount", "10", "-d", "Bus", "-c", "transportation", "--date", "2026-09-30")

	out = mustRun(t, "expense", "list")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "Bus")

	out = mustRun(t, "expense", "list", "--month", "2026-10")
	assert.Contains(t, out, "Lunch")
	assert.NotContains(t, out, "Bus")

	out = mustRun(t, "expense", "delete", id)
	assert.Contains(t, out, "Deleted expense "+id)

	out = mustRun(t, "expense", "delete", id)
	assert.Contains(t, out, "No expense with id "+id)
}

func TestExpenseCommandErrors(t *testing.T) {
	useBolt(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing amount", []string{"expense", "add", "-d", "Lunch"}, "amount"},
		{"negative amount", []string{"expense", "add", "--amount", "-5", "-d", "Lunch"}, "invalid amount"},
		{"unknown category", []string{"expense", "add", "--amount", "5", "-d", "Lunch", "-c", "pets"}, "invalid category"},
		{"bad date", []string{"expense", "add", "--amount", "5", "-d", "Lunch", "--date", "soon"}, "invalid date"},
		{"unknown id", []string{"expense", "edit", "missing", "--amount", "5"}, "not found"},
		{"bad month", []string{"expense", "list", "--month", "2026-13"}, "invalid month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	out := mustRun(t, "expense", "list")
	assert.Contains(t, out, "No expenses recorded.")
}

func TestIncomeCommands(t *testing.T) {
	useBolt(t)

	out := mustRun(t, "income", "add", "--amount", "1000", "--source", "Freelance")
	assert.Contains(t, out, "₹1,000.00")
	id := lastID(t, out)

	out = mustRun(t, "income", "edit", id, "--source", "Consulting")
	assert.Contains(t, out, "Consulting")
	assert.Contains(t, out, "₹1,000.00")

	out = mustRun(t, "income", "list")
	assert.Contains(t, out, "Consulting")

	mustRun(t, "income", "delete", id)
	out = mustRun(t, "income", "list")
	assert.Contains(t, out, "No incomes recorded.")

	_, err := run(t, "income", "add", "--amount", "5", "--source", "  ")
	assert.Error(t, err)
}

func TestDashboardCommand(t *testing.T) {
	useBolt(t)

	mustRun(t, "income", "add", "--amount", "1000", "--source", "Salary")
	mustRun(t, "expense", "add", "--amount", "50", "-d", "Lunch", "-c", "food")

	out := mustRun(t, "dashboard")
	assert.Contains(t, out, time.Now().UTC().Format("January 2006"))
	assert.Contains(t, out, "₹1,000.00")
	assert.Contains(t, out, "₹950.00")
	assert.Contains(t, out, "Food")

	out = mustRun(t, "dashboard", "--month", "1999-01")
	assert.Contains(t, out, "January 1999")
	assert.Contains(t, out, "No expenses this month.")
}

func TestConfigFileFlag(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("BOLT_DB_PATH", "")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "error")

	cfgPath := filepath.Join(dir, "tracker.yaml")
	dbPath := filepath.Join(dir, "from-file.bolt")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_backend: bolt\nbolt_db_path: "+dbPath+"\n"), 0o600))

	mustRun(t, "--config", cfgPath, "income", "add", "--amount", "1", "--source", "Gift")
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "income", "list")
	assert.Error(t, err)
}

func TestParseMonthFlag(t *testing.T) {
	now := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

	got, err := parseMonthFlag("", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = parseMonthFlag("2026-10", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = parseMonthFlag("2026-02", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC), got)

	_, err = parseMonthFlag("Feb 2026", now)
	assert.Error(t, err)
}

func TestRunServerStopsOnCancel(t *testing.T) {
	srv := apphttp.NewServer("127.0.0.1:0", nil, log.Discard())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv, log.Discard()) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
