package billing

import (
	"context"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// TxRunner runs a callback inside one database transaction with repositories
// bound to it. Document numbering, totals, status changes and audit records
// commit or roll back as a single unit.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// EmailSender delivers customer-facing mail. Implementations must be safe to
// call with delivery unconfigured; callers treat any error as log-and-continue,
// never as a failure of the triggering ledger operation.
type EmailSender interface {
	// SendInvoice mails the invoice to the customer, optionally attaching a
	// rendered PDF, and reports whether a message was actually handed off.
	SendInvoice(inv *entity.Invoice, settings map[string]string, pdf []byte) (sent bool, err error)
}

// InvoicePDFGenerator renders the printable representation of an invoice.
// The invoice must arrive with CustomerName, LineItems and related read
// fields populated.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(inv *entity.Invoice, settings map[string]string) ([]byte, error)
}
