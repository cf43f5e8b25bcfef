package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. DRAFT → SENT → {PARTIAL, PAID, OVERDUE} → PAID, with
// CANCELLED reachable from any non-terminal state. PAID and CANCELLED are
// terminal; a PAID invoice is immutable and cannot be deleted.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusPartial   = "PARTIAL"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice is a billing document derived from, but independently mutable
// from, a job. Monetary invariants after every mutation:
//
//	total      = subtotal + taxAmount
//	taxAmount  = round2(subtotal * taxRate / 100)
//	balanceDue = max(0, total - amountPaid)
type Invoice struct {
	ID            string
	InvoiceNumber string // INV-0001
	Status        string
	IssueDate     time.Time
	DueDate       time.Time
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal // percentage, e.g. 7 for 7%
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	BalanceDue    decimal.Decimal
	Notes         string
	CustomerID    string
	JobID         string // optional
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Populated on reads.
	CustomerName  string
	CustomerEmail string
	JobNumber     string
	JobTitle      string
	LineItems     []*LineItem
	Payments      []*Payment
	PaymentCount  int
}
