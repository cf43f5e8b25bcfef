package dto

import (
	"fmt"
	"time"

	"github.com/intecelectric/crm-api/internal/domain"
)

// DateOnly is the wire format for calendar dates (issue, due, scheduled).
const DateOnly = "2006-01-02"

// ParseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

// FormatDate renders a calendar date, empty for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateOnly)
}

// FormatDatePtr renders an optional calendar date.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// FormatTime renders a timestamp, empty for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
