package dto

import "github.com/shopspring/decimal"

// LineItemRequest one draft line. Amount, when present, overrides
// quantity * unit_price.
type LineItemRequest struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// LineItemResponse one persisted line.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateJobRequest payload for creating a job.
type CreateJobRequest struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          string            `json:"status"`
	Priority        string            `json:"priority"`
	Address         string            `json:"address"`
	City            string            `json:"city"`
	State           string            `json:"state"`
	Zip             string            `json:"zip"`
	ScheduledDate   string            `json:"scheduled_date"` // RFC 3339 or YYYY-MM-DD
	EstimatedAmount *decimal.Decimal  `json:"estimated_amount,omitempty"`
	Notes           string            `json:"notes"`
	CustomerID      string            `json:"customer_id"`
	IsWorkOrder     bool              `json:"is_work_order"`
	WorkOrderEmail  string            `json:"work_order_email"`
	LineItems       []LineItemRequest `json:"line_items"`
}

// UpdateJobRequest payload for updating a job. Nil slices/pointers mean
// "leave unchanged"; a non-nil LineItems replaces the set wholesale.
type UpdateJobRequest struct {
	Title           *string            `json:"title,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Status          *string            `json:"status,omitempty"`
	Priority        *string            `json:"priority,omitempty"`
	Address         *string            `json:"address,omitempty"`
	City            *string            `json:"city,omitempty"`
	State           *string            `json:"state,omitempty"`
	Zip             *string            `json:"zip,omitempty"`
	ScheduledDate   *string            `json:"scheduled_date,omitempty"`
	CompletedDate   *string            `json:"completed_date,omitempty"`
	EstimatedAmount *decimal.Decimal   `json:"estimated_amount,omitempty"`
	ActualAmount    *decimal.Decimal   `json:"actual_amount,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	IsWorkOrder     *bool              `json:"is_work_order,omitempty"`
	WorkOrderEmail  *string            `json:"work_order_email,omitempty"`
	LineItems       *[]LineItemRequest `json:"line_items,omitempty"`
}

// CrewMemberResponse API view of a crew member.
type CrewMemberResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Role            string          `json:"role,omitempty"`
	Rate            decimal.Decimal `json:"rate"`
	Active          bool            `json:"active"`
	AssignmentCount int             `json:"assignment_count"`
}

// JobResponse API view of a job.
type JobResponse struct {
	ID              string                `json:"id"`
	JobNumber       string                `json:"job_number"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Status          string                `json:"status"`
	Priority        string                `json:"priority"`
	Address         string                `json:"address,omitempty"`
	City            string                `json:"city,omitempty"`
	State           string                `json:"state,omitempty"`
	Zip             string                `json:"zip,omitempty"`
	ScheduledDate   string                `json:"scheduled_date,omitempty"`
	CompletedDate   string                `json:"completed_date,omitempty"`
	EstimatedAmount decimal.Decimal       `json:"estimated_amount"`
	ActualAmount    decimal.Decimal       `json:"actual_amount"`
	Notes           string                `json:"notes,omitempty"`
	IsWorkOrder     bool                  `json:"is_work_order"`
	WorkOrderEmail  string                `json:"work_order_email,omitempty"`
	CustomerID      string                `json:"customer_id"`
	CustomerName    string                `json:"customer_name,omitempty"`
	InvoiceCount    int                   `json:"invoice_count"`
	LineItems       []LineItemResponse    `json:"line_items,omitempty"`
	Crew            []*CrewMemberResponse `json:"crew,omitempty"`
	CreatedAt       string                `json:"created_at"`
}

// JobListResponse paged job listing.
type JobListResponse struct {
	Jobs []*JobResponse `json:"jobs"`
	Page PageResponse   `json:"page"`
}

// AssignCrewRequest assignment payload.
type AssignCrewRequest struct {
	CrewID string `json:"crew_id"`
}
