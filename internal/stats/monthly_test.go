package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financetracker/internal/core"
)

var ist = time.FixedZone("IST", 5*3600+30*60)

func expense(id string, cents int64, cat core.Category, at time.Time) core.Expense {
	return core.Expense{ID: id, Amount: core.Money{Cents: cents}, Description: id, Category: cat, Date: at}
}

func income(id string, cents int64, at time.Time) core.Income {
	return core.Income{ID: id, Amount: core.Money{Cents: cents}, Source: id, Date: at}
}

func TestComputeMonthlyStats_Empty(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, ist)
	s := ComputeMonthlyStats(nil, nil, now)

	assert.Equal(t, 2026, s.Year)
	assert.Equal(t, time.October, s.Month)
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.Balance.IsZero())
	require.Len(t, s.ExpensesByCategory, 8)
	for _, c := range core.Categories() {
		v, ok := s.ExpensesByCategory[c]
		assert.True(t, ok, "category %s missing", c)
		assert.Zero(t, v.Cents)
	}
}

func TestComputeMonthlyStats_FiltersCurrentMonth(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, ist)
	expenses := []core.Expense{
		expense("lunch", 5000, core.Food, time.Date(2026, 10, 18, 13, 0, 0, 0, ist)),
		expense("bus", 1250, core.Transportation, time.Date(2026, 10, 2, 9, 0, 0, 0, ist)),
		expense("rent-sep", 2000000, core.Housing, time.Date(2026, 9, 1, 9, 0, 0, 0, ist)),
		expense("last-year", 999, core.Food, time.Date(2025, 10, 18, 13, 0, 0, 0, ist)),
	}
	incomes := []core.Income{
		income("salary", 10000000, time.Date(2026, 10, 1, 9, 0, 0, 0, ist)),
		income("bonus-aug", 500000, time.Date(2026, 8, 30, 9, 0, 0, 0, ist)),
	}

	s := ComputeMonthlyStats(expenses, incomes, now)

	assert.Equal(t, int64(6250), s.TotalExpenses.Cents)
	assert.Equal(t, int64(10000000), s.TotalIncome.Cents)
	assert.Equal(t, int64(10000000-6250), s.Balance.Cents)
	assert.Equal(t, int64(5000), s.ExpensesByCategory[core.Food].Cents)
	assert.Equal(t, int64(1250), s.ExpensesByCategory[core.Transportation].Cents)
	assert.Zero(t, s.ExpensesByCategory[core.Housing].Cents)
}

func TestComputeMonthlyStats_MonthBoundaries(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, ist)
	start, end := MonthBounds(now)
	require.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, ist), start)
	require.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, ist), end)

	lastOfSeptember := start.Add(-time.Nanosecond)
	expenses := []core.Expense{
		expense("first-instant", 100, core.Other, start),
		expense("last-instant-prev", 200, core.Other, lastOfSeptember),
		expense("last-instant", 400, core.Other, end.Add(-time.Nanosecond)),
		expense("next-month", 800, core.Other, end),
	}
	s := ComputeMonthlyStats(expenses, nil, now)
	assert.Equal(t, int64(500), s.TotalExpenses.Cents)

	// The same record dated on the last instant of September is excluded from
	// October but belongs to September's stats.
	sept := ComputeMonthlyStats(expenses, nil, lastOfSeptember)
	assert.Equal(t, int64(200), sept.TotalExpenses.Cents)
}

func TestComputeMonthlyStats_UsesClockLocation(t *testing.T) {
	// 20:00 UTC on Sep 30 is 01:30 on Oct 1 in IST.
	at := time.Date(2026, 9, 30, 20, 0, 0, 0, time.UTC)
	expenses := []core.Expense{expense("late", 300, core.Food, at)}

	inIST := ComputeMonthlyStats(expenses, nil, time.Date(2026, 10, 5, 0, 0, 0, 0, ist))
	inUTC := ComputeMonthlyStats(expenses, nil, time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, int64(300), inIST.TotalExpenses.Cents)
	assert.Zero(t, inUTC.TotalExpenses.Cents)
}

func TestComputeMonthlyStats_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, ist)
	cats := core.Categories()

	for round := 0; round < 50; round++ {
		var expenses []core.Expense
		var incomes []core.Income
		nExp, nInc := rng.Intn(40), rng.Intn(10)
		for i := 0; i < nExp; i++ {
			at := now.AddDate(0, 0, rng.Intn(90)-60)
			expenses = append(expenses, expense("e", rng.Int63n(1_000_000), cats[rng.Intn(len(cats))], at))
		}
		for i := 0; i < nInc; i++ {
			at := now.AddDate(0, 0, rng.Intn(90)-60)
			incomes = append(incomes, income("i", rng.Int63n(5_000_000), at))
		}

		s := ComputeMonthlyStats(expenses, incomes, now)

		var sum core.Money
		for _, v := range s.ExpensesByCategory {
			sum = sum.Add(v)
		}
		require.Equal(t, s.TotalExpenses, sum, "round %d", round)
		require.Equal(t, s.TotalIncome.Sub(s.TotalExpenses), s.Balance, "round %d", round)
		require.Len(t, s.ExpensesByCategory, len(cats))
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "October 2026", MonthLabel(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.True(t, InMonth(time.Date(2026, 10, 31, 23, 59, 0, 0, ist), time.Date(2026, 10, 1, 0, 0, 0, 0, ist)))
}
