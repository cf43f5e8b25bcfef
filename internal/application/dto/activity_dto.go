package dto

// ActivityResponse one audit record.
type ActivityResponse struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Description   string            `json:"description"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	JobID         string            `json:"job_id,omitempty"`
	JobNumber     string            `json:"job_number,omitempty"`
	InvoiceID     string            `json:"invoice_id,omitempty"`
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	UserID        string            `json:"user_id,omitempty"`
	UserName      string            `json:"user_name,omitempty"`
	CreatedAt     string            `json:"created_at"`
}

// ActivityListResponse paged audit trail.
type ActivityListResponse struct {
	Activities []*ActivityResponse `json:"activities"`
	Page       PageResponse        `json:"page"`
}
