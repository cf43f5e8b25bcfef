package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intecelectric/crm-api/internal/application/dto"
	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
)

func pay(amount int64) dto.RecordPaymentRequest {
	return dto.RecordPaymentRequest{Amount: decimal.NewFromInt(amount)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger arithmetic and status rollover
// ──────────────────────────────────────────────────────────────────────────────

// A payment below the balance moves a SENT invoice to PARTIAL and leaves the
// remainder outstanding.
func TestApplyPayment_PartialPayment(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	payment, inv, err := f.uc.ApplyPayment(context.Background(), testActorID, "inv-1", pay(100))
	require.NoError(t, err)

	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, entity.InvoiceStatusPartial, inv.Status)
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(100)))
	assert.True(t, inv.BalanceDue.Equal(decimal.NewFromInt(114)), "balance = %s", inv.BalanceDue)

	// One payment record and one status-change record, both attributed.
	received := f.store.activitiesOfType(entity.ActivityPaymentReceived)
	require.Len(t, received, 1)
	assert.Equal(t, testActorID, received[0].UserID)
	assert.Contains(t, received[0].Description, "$100.00")

	changes := f.store.activitiesOfType(entity.ActivityStatusChange)
	require.Len(t, changes, 1)
	assert.Equal(t, entity.InvoiceStatusSent, changes[0].Metadata["from"])
	assert.Equal(t, entity.InvoiceStatusPartial, changes[0].Metadata["to"])
}

// Paying the remainder of a PARTIAL invoice settles it.
func TestApplyPayment_PayOff(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))
	ctx := context.Background()

	_, _, err := f.uc.ApplyPayment(ctx, testActorID, "inv-1", pay(100))
	require.NoError(t, err)
	_, inv, err := f.uc.ApplyPayment(ctx, testActorID, "inv-1", pay(114))
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.BalanceDue.IsZero())
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(214)))

	// Both payments are on the ledger.
	payments, err := (&fakeInvoiceRepo{s: f.store}).ListPayments("inv-1")
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

// Overpayment is accepted: the full amount is recorded, the balance clamps at
// zero and the invoice is PAID.
func TestApplyPayment_OverpaymentClampsBalance(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	payment, inv, err := f.uc.ApplyPayment(context.Background(), testActorID, "inv-1", pay(500))
	require.NoError(t, err)

	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(500)), "the recorded payment keeps its real amount")
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(500)))
	assert.True(t, inv.BalanceDue.IsZero(), "balance clamps at zero, never negative")
}

// A full payment against a DRAFT invoice jumps it straight to PAID; checks
// sometimes arrive before anyone clicks send.
func TestApplyPayment_DraftPaidDirectly(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusDraft,
		decimal.NewFromInt(80), time.Now().AddDate(0, 1, 0))

	_, inv, err := f.uc.ApplyPayment(context.Background(), testActorID, "inv-1", pay(80))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
}

// An OVERDUE invoice receiving a partial payment moves back to PARTIAL.
func TestApplyPayment_OverdueBackToPartial(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusOverdue,
		decimal.NewFromInt(214), time.Now().AddDate(0, 0, -10))

	_, inv, err := f.uc.ApplyPayment(context.Background(), testActorID, "inv-1", pay(50))
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, inv.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Defaults and validation
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyPayment_DefaultMethodIsCheck(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	payment, _, err := f.uc.ApplyPayment(context.Background(), testActorID, "inv-1", pay(50))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodCheck, payment.Method)
}

func TestApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))
	ctx := context.Background()

	_, _, err := f.uc.ApplyPayment(ctx, testActorID, "inv-1", pay(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = f.uc.ApplyPayment(ctx, testActorID, "inv-1", pay(-25))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyPayment_RejectsUnknownMethod(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))

	_, _, err := f.uc.ApplyPayment(context.Background(), testActorID, "inv-1", dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(50),
		Method: "BARTER",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyPayment_RejectsPaidAndCancelled(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-paid", "INV-0001", entity.InvoiceStatusPaid,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))
	f.seedInvoice("inv-cancelled", "INV-0002", entity.InvoiceStatusCancelled,
		decimal.NewFromInt(214), time.Now().AddDate(0, 1, 0))
	ctx := context.Background()

	_, _, err := f.uc.ApplyPayment(ctx, testActorID, "inv-paid", pay(10))
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, _, err = f.uc.ApplyPayment(ctx, testActorID, "inv-cancelled", pay(10))
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Nothing landed on the audit trail.
	assert.Empty(t, f.store.activitiesOfType(entity.ActivityPaymentReceived))
}

func TestApplyPayment_UnknownInvoice(t *testing.T) {
	f := newFixture()

	_, _, err := f.uc.ApplyPayment(context.Background(), testActorID, "no-such", pay(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
