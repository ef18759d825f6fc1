package core

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date: use RFC 3339 or YYYY-MM-DD")

// ParseDate accepts an RFC 3339 timestamp or a calendar date, which is read
// as midnight in loc. A blank string yields the zero time, which the ledger
// replaces with the submission time.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
