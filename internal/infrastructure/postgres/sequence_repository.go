package postgres

import (
	"context"
	"fmt"

	"github.com/intecelectric/crm-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo allocates document numbers from a per-series counter row.
// The single-statement upsert increments and returns atomically, so two
// transactions calling Next concurrently can never see the same value; the
// second blocks on the row lock until the first commits.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository builds the adapter. Pass pool or tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next returns the next number in the series, starting at 1.
func (r *SequenceRepo) Next(series string) (int64, error) {
	query := `
		INSERT INTO document_sequences (series, last_value)
		VALUES ($1, 1)
		ON CONFLICT (series) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, series).Scan(&n); err != nil {
		return 0, fmt.Errorf("next %s number: %w", series, err)
	}
	return n, nil
}
