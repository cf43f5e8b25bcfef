package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implements the append-only audit log over PostgreSQL (usable
// with pool or tx). Rows are only ever inserted and read.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository builds the adapter. Pass pool or tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create appends one audit record. Metadata persists as JSONB.
func (r *ActivityRepo) Create(a *entity.Activity) error {
	var metadata []byte
	if len(a.Metadata) > 0 {
		var err error
		if metadata, err = json.Marshal(a.Metadata); err != nil {
			return fmt.Errorf("marshal activity metadata: %w", err)
		}
	}
	query := `
		INSERT INTO activities (id, type, description, metadata, job_id, invoice_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Type, a.Description, metadata,
		nullableID(a.JobID), nullableID(a.InvoiceID), nullableID(a.UserID), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List returns a filtered page plus the unpaged total, newest first.
func (r *ActivityRepo) List(f repository.ActivityFilter) ([]*entity.Activity, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	n := 0
	if f.JobID != "" {
		n++
		where += fmt.Sprintf(" AND a.job_id = $%d", n)
		args = append(args, f.JobID)
	}
	if f.InvoiceID != "" {
		n++
		where += fmt.Sprintf(" AND a.invoice_id = $%d", n)
		args = append(args, f.InvoiceID)
	}
	if f.Type != "" {
		n++
		where += fmt.Sprintf(" AND a.type = $%d", n)
		args = append(args, f.Type)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM activities a"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	query := `
		SELECT a.id, a.type, a.description, a.metadata,
		       COALESCE(a.job_id::text, ''), COALESCE(a.invoice_id::text, ''), COALESCE(a.user_id::text, ''),
		       a.created_at,
		       COALESCE(u.name, ''), COALESCE(j.job_number, ''), COALESCE(j.title, ''), COALESCE(i.invoice_number, '')
		FROM activities a
		LEFT JOIN users u ON u.id = a.user_id
		LEFT JOIN jobs j ON j.id = a.job_id
		LEFT JOIN invoices i ON i.id = a.invoice_id` + where +
		fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		var metadata []byte
		if err := rows.Scan(
			&a.ID, &a.Type, &a.Description, &metadata,
			&a.JobID, &a.InvoiceID, &a.UserID, &a.CreatedAt,
			&a.UserName, &a.JobNumber, &a.JobTitle, &a.InvoiceNumber,
		); err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
				return nil, 0, fmt.Errorf("unmarshal activity metadata: %w", err)
			}
		}
		list = append(list, &a)
	}
	return list, total, rows.Err()
}
