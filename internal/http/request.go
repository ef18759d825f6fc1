package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"financetracker/internal/core"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidBody   = errors.New("invalid request body")
	errMissingAmount = errors.New("amount is required")
	errInvalidMonth  = errors.New("invalid year or month")
)

type expenseRequest struct {
	Amount      *core.Money `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

type incomeRequest struct {
	Amount *core.Money `json:"amount"`
	Source string      `json:"source"`
	Date   string      `json:"date"`
}

// decodeJSON reads a single JSON object from the request body into dst.
// Amount errors are passed through so they map to validation failures.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			return err
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// input converts the request to a ledger input. An empty category defaults
// to "other"; an empty date is left zero so the ledger stamps it.
func (req expenseRequest) input(loc *time.Location) (core.ExpenseInput, error) {
	if req.Amount == nil {
		return core.ExpenseInput{}, errMissingAmount
	}
	category := core.Other
	if strings.TrimSpace(req.Category) != "" {
		c, err := core.ParseCategory(req.Category)
		if err != nil {
			return core.ExpenseInput{}, err
		}
		category = c
	}
	date, err := core.ParseDate(req.Date, loc)
	if err != nil {
		return core.ExpenseInput{}, err
	}
	return core.ExpenseInput{
		Amount:      *req.Amount,
		Description: sanitizeInput(req.Description),
		Category:    category,
		Date:        date,
	}, nil
}

func (req incomeRequest) input(loc *time.Location) (core.IncomeInput, error) {
	if req.Amount == nil {
		return core.IncomeInput{}, errMissingAmount
	}
	date, err := core.ParseDate(req.Date, loc)
	if err != nil {
		return core.IncomeInput{}, err
	}
	return core.IncomeInput{
		Amount: *req.Amount,
		Source: sanitizeInput(req.Source),
		Date:   date,
	}, nil
}

// parseMonth extracts year and month from query parameters, defaulting to the
// month of now. The result is noon on the first of the month in now's zone.
func parseMonth(query url.Values, now time.Time) (time.Time, error) {
	year, month := now.Year(), int(now.Month())

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 || y > 9999 {
			return time.Time{}, errInvalidMonth
		}
		year = y
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, errInvalidMonth
		}
		month = m
	}

	if year == now.Year() && month == int(now.Month()) {
		return now, nil
	}
	return time.Date(year, time.Month(month), 1, 12, 0, 0, 0, now.Location()), nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
