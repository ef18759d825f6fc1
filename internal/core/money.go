// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings,
// the JSON form used by the persisted ledger, and currency rendering.
package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Money is a currency amount in cents. Ledger records are never negative;
// derived values such as a balance may be.
type Money struct {
	Cents int64
}

var maxCents = decimal.NewFromInt(math.MaxInt64)

const (
	// maxIntegerDigits is the digit count of the largest whole rupee value
	// that fits in int64 cents.
	maxIntegerDigits = 17
	// maxFractionDigits bounds the precision accepted from JSON numbers.
	maxFractionDigits = 20
)

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. Signs, garbage and values that
// overflow int64 cents are rejected; zero is a valid amount.
//
// Examples:
//   ParseDecimalToCents("12.34") -> 1234, nil
//   ParseDecimalToCents("12,34") -> 1234, nil
//   ParseDecimalToCents("12.345") -> 1235, nil (rounds up)
//   ParseDecimalToCents("12.344") -> 1234, nil (rounds down)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// iv*100 plus up to 100 rounded cents must fit in int64
	const maxSafeInt64 = (math.MaxInt64 - 100) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// NewMoney parses a user supplied decimal amount.
func NewMoney(s string) (Money, error) {
	cents, err := ParseDecimalToCents(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Cents: cents}, nil
}

// FromDecimal converts an exact decimal to cents, rounding half-up.
// Magnitude is checked from digit count and exponent before any rescaling,
// so inputs like 1e50000000 are rejected without building the number.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	if d.IsZero() {
		return Money{}, nil
	}
	magnitude := d.NumDigits() + int(d.Exponent())
	if magnitude > maxIntegerDigits {
		return Money{}, ErrInvalidAmount
	}
	// Below 0.001 rounds to zero cents.
	if magnitude < -2 {
		return Money{}, nil
	}
	if d.Exponent() < -maxFractionDigits {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsZero() bool { return m.Cents == 0 }

func (m Money) IsNegative() bool { return m.Cents < 0 }

// Decimal returns the exact decimal value of m.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders m with two decimals and no currency sign ("50.00").
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// FormatINR renders m the way the en-IN locale formats rupees:
// Indian digit grouping, two decimals, "-₹" for negatives.
func (m Money) FormatINR() string {
	neg := m.Cents < 0
	abs := uint64(m.Cents)
	if neg {
		abs = uint64(-(m.Cents + 1)) + 1
	}
	units := strconv.FormatUint(abs/100, 10)
	frac := abs % 100
	out := "₹" + groupIndian(units) + "." + strconv.FormatUint(frac/10, 10) + strconv.FormatUint(frac%10, 10)
	if neg {
		return "-" + out
	}
	return out
}

// groupIndian inserts separators after the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// MarshalJSON writes m as a bare JSON number (50, 12.34).
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string. Numbers are
// read exactly and rounded half-up to cents; null and negatives are rejected.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return ErrInvalidAmount
	}
	if s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return ErrInvalidAmount
		}
		parsed, err := NewMoney(raw)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ErrInvalidAmount
	}
	parsed, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
