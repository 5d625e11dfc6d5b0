package utils

import (
	"strings"
	"time"

	"github.com/anjiri1684/school_fees/apperrors"
)

const DateLayout = "2006-01-02"

// ParseDate reads a calendar date written either as 2006-01-02 or as an
// RFC 3339 timestamp. The written date is kept and any offset is dropped, so
// the result is midnight UTC of that day.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < len(DateLayout) {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	if _, err := time.Parse(time.RFC3339, raw); err != nil {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	t, err := time.Parse(DateLayout, raw[:len(DateLayout)])
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	return t, nil
}

// SameDay compares two instants by UTC calendar day.
func SameDay(a, b time.Time) bool {
	return a.UTC().Format(DateLayout) == b.UTC().Format(DateLayout)
}
