package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Send: status transition with a best-effort email collaborator
// ──────────────────────────────────────────────────────────────────────────────

// Sending a DRAFT invoice marks it SENT, attempts delivery with the PDF
// attached and records both the status change and the send on the trail.
func TestSend_DraftBecomesSent(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusDraft,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	emailSent, err := f.uc.Send(context.Background(), testActorID, "inv-1")
	require.NoError(t, err)
	assert.True(t, emailSent)
	assert.Equal(t, 1, f.email.calls)
	assert.NotEmpty(t, f.email.lastPDF, "the email goes out with the PDF attached")

	assert.Equal(t, entity.InvoiceStatusSent, f.store.invoices["inv-1"].Status)

	changes := f.store.activitiesOfType(entity.ActivityStatusChange)
	require.Len(t, changes, 1)
	assert.Equal(t, entity.InvoiceStatusDraft, changes[0].Metadata["from"])
	assert.Equal(t, entity.InvoiceStatusSent, changes[0].Metadata["to"])

	sent := f.store.activitiesOfType(entity.ActivityInvoiceSent)
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Description, "office@harborpointmarina.com")
}

// Delivery failure is reported but never blocks the transition: the invoice
// is SENT either way.
func TestSend_EmailFailureStillTransitions(t *testing.T) {
	f := newFixture()
	f.email.sent = false
	f.email.err = fmt.Errorf("smtp: connection refused")
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusDraft,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	emailSent, err := f.uc.Send(context.Background(), testActorID, "inv-1")
	require.NoError(t, err)
	assert.False(t, emailSent)
	assert.Equal(t, entity.InvoiceStatusSent, f.store.invoices["inv-1"].Status)
	assert.Len(t, f.store.activitiesOfType(entity.ActivityStatusChange), 1)
}

// A broken PDF renderer downgrades to sending without an attachment.
func TestSend_PDFFailureSendsWithoutAttachment(t *testing.T) {
	f := newFixture()
	f.pdf.out = nil
	f.pdf.err = fmt.Errorf("render: font missing")
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusDraft,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	emailSent, err := f.uc.Send(context.Background(), testActorID, "inv-1")
	require.NoError(t, err)
	assert.True(t, emailSent)
	assert.Equal(t, 1, f.email.calls)
	assert.Nil(t, f.email.lastPDF)
}

// Re-sending an already-SENT invoice re-attempts the email but records no
// second transition and no duplicate audit entries.
func TestSend_AlreadySentIsNoOp(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	emailSent, err := f.uc.Send(context.Background(), testActorID, "inv-1")
	require.NoError(t, err)
	assert.True(t, emailSent, "the customer still gets the reminder email")
	assert.Equal(t, 1, f.email.calls)

	assert.Empty(t, f.store.activitiesOfType(entity.ActivityStatusChange))
	assert.Empty(t, f.store.activitiesOfType(entity.ActivityInvoiceSent))
}

// Terminal invoices cannot be sent.
func TestSend_PaidRejected(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusPaid,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	_, err := f.uc.Send(context.Background(), testActorID, "inv-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 0, f.email.calls)
}

func TestSend_UnknownInvoice(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Send(context.Background(), testActorID, "no-such")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
