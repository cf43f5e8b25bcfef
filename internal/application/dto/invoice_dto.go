package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest payload for creating an invoice.
type CreateInvoiceRequest struct {
	CustomerID string            `json:"customer_id"`
	JobID      string            `json:"job_id"`
	IssueDate  string            `json:"issue_date"` // RFC 3339 or YYYY-MM-DD
	DueDate    string            `json:"due_date"`
	TaxRate    *decimal.Decimal  `json:"tax_rate,omitempty"`
	Notes      string            `json:"notes"`
	LineItems  []LineItemRequest `json:"line_items"`
}

// UpdateInvoiceRequest payload for updating an invoice. Nil means "leave
// unchanged"; a non-nil LineItems replaces the set wholesale and triggers a
// total recomputation.
type UpdateInvoiceRequest struct {
	Status    *string            `json:"status,omitempty"`
	IssueDate *string            `json:"issue_date,omitempty"`
	DueDate   *string            `json:"due_date,omitempty"`
	TaxRate   *decimal.Decimal   `json:"tax_rate,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
	LineItems *[]LineItemRequest `json:"line_items,omitempty"`
}

// RecordPaymentRequest payload for applying a payment.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
	PaidAt    string          `json:"paid_at"` // optional, defaults to now
}

// PaymentResponse one recorded payment.
type PaymentResponse struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	PaidAt    string          `json:"paid_at"`
}

// InvoiceResponse API view of an invoice.
type InvoiceResponse struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	Status        string               `json:"status"`
	IssueDate     string               `json:"issue_date"`
	DueDate       string               `json:"due_date"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	TaxRate       decimal.Decimal      `json:"tax_rate"`
	TaxAmount     decimal.Decimal      `json:"tax_amount"`
	Total         decimal.Decimal      `json:"total"`
	AmountPaid    decimal.Decimal      `json:"amount_paid"`
	BalanceDue    decimal.Decimal      `json:"balance_due"`
	Notes         string               `json:"notes,omitempty"`
	CustomerID    string               `json:"customer_id"`
	CustomerName  string               `json:"customer_name,omitempty"`
	JobID         string               `json:"job_id,omitempty"`
	JobNumber     string               `json:"job_number,omitempty"`
	PaymentCount  int                  `json:"payment_count"`
	LineItems     []LineItemResponse   `json:"line_items,omitempty"`
	Payments      []*PaymentResponse   `json:"payments,omitempty"`
	Activities    []*ActivityResponse  `json:"activities,omitempty"`
	CreatedAt     string               `json:"created_at"`
}

// InvoiceListResponse paged invoice listing.
type InvoiceListResponse struct {
	Invoices []*InvoiceResponse `json:"invoices"`
	Page     PageResponse       `json:"page"`
}

// SendInvoiceResponse result of the send action. EmailSent is false when
// delivery is unconfigured or failed; the invoice is marked SENT regardless.
type SendInvoiceResponse struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"email_sent"`
}
