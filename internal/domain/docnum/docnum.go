// Package docnum formats and parses human-readable document numbers
// (JOB-0001, INV-0002). Allocation itself lives in the sequence counter
// table; this package only handles the textual form.
package docnum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/intecelectric/crm-api/internal/domain"
)

// Document series.
const (
	SeriesJob     = "JOB"
	SeriesInvoice = "INV"
)

// Format renders a document number for a series, zero-padded to four digits.
// Numbers past 9999 simply grow wider.
func Format(series string, n int64) string {
	return fmt.Sprintf("%s-%04d", series, n)
}

// Parse splits a document number into series and numeric suffix.
func Parse(number string) (series string, n int64, err error) {
	idx := strings.LastIndex(number, "-")
	if idx <= 0 || idx == len(number)-1 {
		return "", 0, fmt.Errorf("parse document number %q: %w", number, domain.ErrInvalidInput)
	}
	n, err = strconv.ParseInt(number[idx+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("parse document number %q: %w", number, domain.ErrInvalidInput)
	}
	return number[:idx], n, nil
}
