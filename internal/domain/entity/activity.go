package entity

import "time"

// Activity types.
const (
	ActivityJobCreated        = "JOB_CREATED"
	ActivityInvoiceCreated    = "INVOICE_CREATED"
	ActivityInvoiceSent       = "INVOICE_SENT"
	ActivityStatusChange      = "STATUS_CHANGE"
	ActivityPaymentReceived   = "PAYMENT_RECEIVED"
	ActivityCrewAssigned      = "CREW_ASSIGNED"
	ActivityCrewRemoved       = "CREW_REMOVED"
	ActivityLineItemsUpdated  = "LINE_ITEMS_UPDATED"
	ActivityWorkOrderReceived = "WORK_ORDER_RECEIVED"
)

// Activity is an append-only audit record, created exclusively as a side
// effect of ledger mutations. Job/Invoice/User references are weak (lookup
// only); metadata carries structured detail such as {from, to} for a status
// change.
type Activity struct {
	ID          string
	Type        string
	Description string
	Metadata    map[string]string
	JobID       string // optional
	InvoiceID   string // optional
	UserID      string // optional
	CreatedAt   time.Time

	// Populated on reads.
	UserName      string
	JobNumber     string
	JobTitle      string
	InvoiceNumber string
}
