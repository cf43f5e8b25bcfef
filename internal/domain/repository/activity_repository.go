package repository

import "github.com/intecelectric/crm-api/internal/domain/entity"

// ActivityFilter narrows the audit trail.
type ActivityFilter struct {
	JobID     string
	InvoiceID string
	Type      string
	Limit     int
	Offset    int
}

// ActivityRepository is the append-only audit log. Records are never updated
// or deleted.
type ActivityRepository interface {
	Create(a *entity.Activity) error
	List(f ActivityFilter) ([]*entity.Activity, int, error)
}
