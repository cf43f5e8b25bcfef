package repository

import (
	"time"

	"github.com/intecelectric/crm-api/internal/domain/entity"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Search     string // matches invoice number, customer name
	Status     string
	CustomerID string
	JobID      string
	Limit      int
	Offset     int
}

// InvoiceRepository persists invoices, their line items and payments.
// Get methods return (nil, nil) when the row does not exist.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetByIDForUpdate locks the invoice row for the rest of the transaction.
	// The payment ledger's read-modify-write of amountPaid/balanceDue/status
	// depends on this to avoid lost updates between concurrent payments.
	GetByIDForUpdate(id string) (*entity.Invoice, error)
	List(f InvoiceFilter) ([]*entity.Invoice, int, error)
	Update(inv *entity.Invoice) error
	Delete(id string) error

	ReplaceLineItems(invoiceID string, items []*entity.LineItem) error
	ListLineItems(invoiceID string) ([]*entity.LineItem, error)

	// Payments are append-only; there is no update or delete.
	CreatePayment(p *entity.Payment) error
	ListPayments(invoiceID string) ([]*entity.Payment, error)

	// ListOverdueCandidates returns invoices in SENT or PARTIAL whose due
	// date is strictly before now, locked with SKIP LOCKED so the sweep
	// never blocks user-triggered mutations in flight.
	ListOverdueCandidates(now time.Time, limit int) ([]*entity.Invoice, error)
}
