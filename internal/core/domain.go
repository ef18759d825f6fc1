package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Food           Category = "food"
	Transportation Category = "transportation"
	Housing        Category = "housing"
	Utilities      Category = "utilities"
	Entertainment  Category = "entertainment"
	Healthcare     Category = "healthcare"
	Shopping       Category = "shopping"
	Other          Category = "other"
)

// MaxTextLength bounds descriptions and income sources.
const MaxTextLength = 200

type (
	// Category tags an expense with its spending type. The set is closed.
	Category string

	Expense struct {
		ID          string    `json:"id"`
		Amount      Money     `json:"amount"`
		Description string    `json:"description"`
		Category    Category  `json:"category"`
		Date        time.Time `json:"date"`
	}

	Income struct {
		ID     string    `json:"id"`
		Amount Money     `json:"amount"`
		Source string    `json:"source"`
		Date   time.Time `json:"date"`
	}

	// ExpenseInput is an expense as submitted, before the ledger assigns an id.
	// A zero Date is stamped with the submission time by the ledger.
	ExpenseInput struct {
		Amount      Money
		Description string
		Category    Category
		Date        time.Time
	}

	// IncomeInput is an income as submitted, before the ledger assigns an id.
	IncomeInput struct {
		Amount Money
		Source string
		Date   time.Time
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptySource        = errors.New("empty income source")
	ErrDescriptionTooLong = errors.New("text too long (max 200 characters)")
	ErrEmptyID            = errors.New("empty id")
	ErrZeroDate           = errors.New("date cannot be zero")
)

var categories = []Category{
	Food, Transportation, Housing, Utilities,
	Entertainment, Healthcare, Shopping, Other,
}

// Categories returns every category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory normalizes s and checks it against the closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the capitalized name used on the dashboard ("Food").
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c Category) String() string {
	return string(c)
}

func validateText(s string, emptyErr error) error {
	if len(strings.TrimSpace(s)) == 0 {
		return emptyErr
	}
	if utf8.RuneCountInString(s) > MaxTextLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func (in ExpenseInput) Validate() error {
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	if err := validateText(in.Description, ErrEmptyDescription); err != nil {
		return err
	}
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

func (in IncomeInput) Validate() error {
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	return validateText(in.Source, ErrEmptySource)
}

// Validate checks a stored expense, including the fields the ledger owns.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	return e.Input().Validate()
}

func (i Income) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrEmptyID
	}
	if i.Date.IsZero() {
		return ErrZeroDate
	}
	return i.Input().Validate()
}

// Input strips the id off an expense.
func (e Expense) Input() ExpenseInput {
	return ExpenseInput{
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
	}
}

func (i Income) Input() IncomeInput {
	return IncomeInput{Amount: i.Amount, Source: i.Source, Date: i.Date}
}
