package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job statuses. LEAD → QUOTED → SCHEDULED → IN_PROGRESS → COMPLETED, with
// CANCELLED reachable from any non-terminal state.
const (
	JobStatusLead       = "LEAD"
	JobStatusQuoted     = "QUOTED"
	JobStatusScheduled  = "SCHEDULED"
	JobStatusInProgress = "IN_PROGRESS"
	JobStatusCompleted  = "COMPLETED"
	JobStatusCancelled  = "CANCELLED"
)

// Job priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// ValidJobPriority reports whether p is a known priority.
func ValidJobPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Job is a unit of work owned by exactly one customer. Line items are
// replaced wholesale on update, never merged. Deletable only when it has
// no invoices.
type Job struct {
	ID              string
	JobNumber       string // JOB-0001
	Title           string
	Description     string
	Status          string
	Priority        string
	Address         string
	City            string
	State           string
	Zip             string
	ScheduledDate   *time.Time
	CompletedDate   *time.Time
	EstimatedAmount decimal.Decimal
	ActualAmount    decimal.Decimal
	Notes           string
	IsWorkOrder     bool
	WorkOrderEmail  string
	CustomerID      string
	CreatedByID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Populated on reads.
	CustomerName string
	LineItems    []*LineItem
	Crew         []*CrewMember
	InvoiceCount int
}
