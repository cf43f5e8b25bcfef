package docnum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intecelectric/crm-api/internal/domain/docnum"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		series string
		n      int64
		want   string
	}{
		{docnum.SeriesJob, 1, "JOB-0001"},
		{docnum.SeriesInvoice, 2, "INV-0002"},
		{docnum.SeriesInvoice, 42, "INV-0042"},
		{docnum.SeriesJob, 9999, "JOB-9999"},
		{docnum.SeriesJob, 10000, "JOB-10000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, docnum.Format(tt.series, tt.n))
	}
}

func TestParse(t *testing.T) {
	series, n, err := docnum.Parse("INV-0042")
	require.NoError(t, err)
	assert.Equal(t, "INV", series)
	assert.Equal(t, int64(42), n)
}

func TestParse_Invalid(t *testing.T) {
	for _, bad := range []string{"", "INV", "INV-", "-0042", "INV-abc"} {
		_, _, err := docnum.Parse(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	series, n, err := docnum.Parse(docnum.Format(docnum.SeriesJob, 137))
	require.NoError(t, err)
	assert.Equal(t, docnum.SeriesJob, series)
	assert.Equal(t, int64(137), n)
}
