// Package ledger owns the expense and income collections and keeps them
// durable in a key-value store.
//
// Collections are ordered most-recent-first. Every mutation rewrites the
// whole affected collection under its key ("expenses" or "incomes") as a JSON
// array; the new collection becomes visible only after that write succeeds.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"financetracker/internal/core"
	"financetracker/internal/kv"
	"financetracker/internal/log"
	"financetracker/internal/stats"
)

// Storage keys of the two collections.
const (
	ExpensesKey = "expenses"
	IncomesKey  = "incomes"
)

var (
	// ErrCorruptData is returned by Load when a stored collection cannot be
	// decoded or holds an invalid record.
	ErrCorruptData = errors.New("corrupt ledger data")

	// ErrPersist wraps failures of the key-value store during a mutation.
	ErrPersist = errors.New("persist ledger")
)

type Store struct {
	mu       sync.RWMutex
	kv       kv.Store
	expenses []core.Expense
	incomes  []core.Income

	now    func() time.Time
	newID  func() string
	logger *log.Logger
}

// Snapshot is a copy of both collections at one point in time.
type Snapshot struct {
	Expenses []core.Expense `json:"expenses"`
	Incomes  []core.Income  `json:"incomes"`
}

type Option func(*Store)

// WithClock sets the clock used to stamp undated records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns an empty ledger backed by store. Call Load to restore
// previously persisted data.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:       store,
		expenses: []core.Expense{},
		incomes:  []core.Income{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Wrap(nil, log.ComponentLedger)
	}
	return s
}

// Open builds a ledger and loads it in one step.
func Open(ctx context.Context, store kv.Store, opts ...Option) (*Store, error) {
	s := New(store, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory collections with the persisted ones. Missing
// keys load as empty collections. Malformed data fails with ErrCorruptData and
// leaves the current state untouched.
func (s *Store) Load(ctx context.Context) error {
	expenses, err := load(ctx, s.kv, ExpensesKey, expenseID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load expenses",
			log.FieldKey, ExpensesKey, log.FieldOperation, log.OpLoad, log.FieldError, err)
		return err
	}
	incomes, err := load(ctx, s.kv, IncomesKey, incomeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load incomes",
			log.FieldKey, IncomesKey, log.FieldOperation, log.OpLoad, log.FieldError, err)
		return err
	}

	s.mu.Lock()
	s.expenses, s.incomes = expenses, incomes
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Collection loaded", log.FieldKey, ExpensesKey, log.FieldCount, len(expenses))
	s.logger.DebugContext(ctx, "Collection loaded", log.FieldKey, IncomesKey, log.FieldCount, len(incomes))
	s.logger.InfoContext(ctx, "Ledger loaded", log.FieldOperation, log.OpLoad,
		"expenses", len(expenses), "incomes", len(incomes))
	return nil
}

// Now returns the ledger clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

// AddExpense validates in, assigns a fresh id and puts the expense at the
// front of the collection. A zero date is stamped with the ledger clock.
func (s *Store) AddExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	if err := in.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := core.Expense{
		ID:          s.newID(),
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        s.stamp(in.Date),
	}
	next := prepend(s.expenses, e)
	if err := s.persist(ctx, ExpensesKey, next); err != nil {
		return core.Expense{}, err
	}
	s.expenses = next

	s.logger.InfoContext(ctx, "Expense added", log.NewFields().
		WithRecord(log.KindExpense, e.ID, e.Amount.Cents).
		WithCategory(e.Category.String()).
		WithOperation(log.OpCreate).ToSlice()...)
	return e, nil
}

// UpdateExpense replaces every field but the id of the expense with the given
// id, keeping its position. An unknown id is a no-op reported as found ==
// false. The collection is persisted in both cases.
func (s *Store) UpdateExpense(ctx context.Context, id string, in core.ExpenseInput) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, fmt.Errorf("update expense: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.expenses
	i := indexOf(s.expenses, id, expenseID)
	if i >= 0 {
		next = replaceAt(s.expenses, i, core.Expense{
			ID:          id,
			Amount:      in.Amount,
			Description: in.Description,
			Category:    in.Category,
			Date:        s.stamp(in.Date),
		})
	}
	if err := s.persist(ctx, ExpensesKey, next); err != nil {
		return false, err
	}
	s.expenses = next

	if i < 0 {
		s.logger.DebugContext(ctx, "Expense update ignored, unknown id", log.FieldID, id)
		return false, nil
	}
	s.logger.InfoContext(ctx, "Expense updated", log.NewFields().
		WithRecord(log.KindExpense, id, in.Amount.Cents).
		WithOperation(log.OpUpdate).ToSlice()...)
	return true, nil
}

// DeleteExpense removes the expense with the given id if present. Deleting an
// unknown id is a no-op.
func (s *Store) DeleteExpense(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.expenses
	i := indexOf(s.expenses, id, expenseID)
	if i >= 0 {
		next = removeAt(s.expenses, i)
	}
	if err := s.persist(ctx, ExpensesKey, next); err != nil {
		return false, err
	}
	s.expenses = next

	if i < 0 {
		s.logger.DebugContext(ctx, "Expense delete ignored, unknown id", log.FieldID, id)
		return false, nil
	}
	s.logger.InfoContext(ctx, "Expense deleted",
		log.FieldKind, log.KindExpense, log.FieldID, id, log.FieldOperation, log.OpDelete)
	return true, nil
}

// AddIncome validates in, assigns a fresh id and puts the income at the
// front of the collection.
func (s *Store) AddIncome(ctx context.Context, in core.IncomeInput) (core.Income, error) {
	if err := in.Validate(); err != nil {
		return core.Income{}, fmt.Errorf("add income: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc := core.Income{
		ID:     s.newID(),
		Amount: in.Amount,
		Source: in.Source,
		Date:   s.stamp(in.Date),
	}
	next := prepend(s.incomes, inc)
	if err := s.persist(ctx, IncomesKey, next); err != nil {
		return core.Income{}, err
	}
	s.incomes = next

	s.logger.InfoContext(ctx, "Income added", log.NewFields().
		WithRecord(log.KindIncome, inc.ID, inc.Amount.Cents).
		WithOperation(log.OpCreate).ToSlice()...)
	return inc, nil
}

// UpdateIncome mirrors UpdateExpense for incomes.
func (s *Store) UpdateIncome(ctx context.Context, id string, in core.IncomeInput) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, fmt.Errorf("update income: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.incomes
	i := indexOf(s.incomes, id, incomeID)
	if i >= 0 {
		next = replaceAt(s.incomes, i, core.Income{
			ID:     id,
			Amount: in.Amount,
			Source: in.Source,
			Date:   s.stamp(in.Date),
		})
	}
	if err := s.persist(ctx, IncomesKey, next); err != nil {
		return false, err
	}
	s.incomes = next

	if i < 0 {
		s.logger.DebugContext(ctx, "Income update ignored, unknown id", log.FieldID, id)
		return false, nil
	}
	s.logger.InfoContext(ctx, "Income updated", log.NewFields().
		WithRecord(log.KindIncome, id, in.Amount.Cents).
		WithOperation(log.OpUpdate).ToSlice()...)
	return true, nil
}

// DeleteIncome removes the income with the given id if present.
func (s *Store) DeleteIncome(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.incomes
	i := indexOf(s.incomes, id, incomeID)
	if i >= 0 {
		next = removeAt(s.incomes, i)
	}
	if err := s.persist(ctx, IncomesKey, next); err != nil {
		return false, err
	}
	s.incomes = next

	if i < 0 {
		s.logger.DebugContext(ctx, "Income delete ignored, unknown id", log.FieldID, id)
		return false, nil
	}
	s.logger.InfoContext(ctx, "Income deleted",
		log.FieldKind, log.KindIncome, log.FieldID, id, log.FieldOperation, log.OpDelete)
	return true, nil
}

// Expenses returns a copy of the expenses, most recent first.
func (s *Store) Expenses() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]core.Expense, 0, len(s.expenses)), s.expenses...)
}

// Incomes returns a copy of the incomes, most recent first.
func (s *Store) Incomes() []core.Income {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]core.Income, 0, len(s.incomes)), s.incomes...)
}

func (s *Store) Expense(id string) (core.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.expenses, id, expenseID); i >= 0 {
		return s.expenses[i], true
	}
	return core.Expense{}, false
}

func (s *Store) Income(id string) (core.Income, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.incomes, id, incomeID); i >= 0 {
		return s.incomes[i], true
	}
	return core.Income{}, false
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Expenses: append(make([]core.Expense, 0, len(s.expenses)), s.expenses...),
		Incomes:  append(make([]core.Income, 0, len(s.incomes)), s.incomes...),
	}
}

// MonthlyStats computes the stats for the month containing now.
func (s *Store) MonthlyStats(now time.Time) core.MonthlyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.ComputeMonthlyStats(s.expenses, s.incomes, now)
}

// CurrentStats computes the stats for the ledger clock's current month.
func (s *Store) CurrentStats() core.MonthlyStats {
	return s.MonthlyStats(s.now())
}
