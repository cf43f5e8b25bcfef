package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intecelectric/crm-api/internal/application/billing"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/pkg/logger"
)

func newSweeper(f *fixture, batch int) *billing.OverdueSweeper {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return billing.NewOverdueSweeper(&fakeTxRunner{s: f.store}, log, billing.SweeperConfig{
		Batch: batch,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Overdue sweep
// ──────────────────────────────────────────────────────────────────────────────

// Past-due SENT and PARTIAL invoices flip to OVERDUE; everything else is
// left alone.
func TestSweep_MarksPastDueInvoices(t *testing.T) {
	f := newFixture()
	pastDue := time.Now().AddDate(0, 0, -5)
	future := time.Now().AddDate(0, 1, 0)

	f.seedInvoice("inv-sent", "INV-0001", entity.InvoiceStatusSent, decimal.NewFromInt(100), pastDue)
	f.seedInvoice("inv-partial", "INV-0002", entity.InvoiceStatusPartial, decimal.NewFromInt(100), pastDue)
	f.seedInvoice("inv-draft", "INV-0003", entity.InvoiceStatusDraft, decimal.NewFromInt(100), pastDue)
	f.seedInvoice("inv-paid", "INV-0004", entity.InvoiceStatusPaid, decimal.NewFromInt(100), pastDue)
	f.seedInvoice("inv-current", "INV-0005", entity.InvoiceStatusSent, decimal.NewFromInt(100), future)

	n, err := newSweeper(f, 0).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, entity.InvoiceStatusOverdue, f.store.invoices["inv-sent"].Status)
	assert.Equal(t, entity.InvoiceStatusOverdue, f.store.invoices["inv-partial"].Status)
	assert.Equal(t, entity.InvoiceStatusDraft, f.store.invoices["inv-draft"].Status,
		"an unsent draft is never overdue")
	assert.Equal(t, entity.InvoiceStatusPaid, f.store.invoices["inv-paid"].Status)
	assert.Equal(t, entity.InvoiceStatusSent, f.store.invoices["inv-current"].Status)
}

// Each flipped invoice gets exactly one system-attributed status-change
// record with {from, to} metadata and no user.
func TestSweep_SystemAttributedAudit(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(100), time.Now().AddDate(0, 0, -1))

	_, err := newSweeper(f, 0).RunOnce(context.Background())
	require.NoError(t, err)

	changes := f.store.activitiesOfType(entity.ActivityStatusChange)
	require.Len(t, changes, 1)
	assert.Empty(t, changes[0].UserID, "the sweep acts as the system, not a user")
	assert.Equal(t, entity.InvoiceStatusSent, changes[0].Metadata["from"])
	assert.Equal(t, entity.InvoiceStatusOverdue, changes[0].Metadata["to"])
	assert.Contains(t, changes[0].Description, "INV-0001")
}

// A second run finds nothing: OVERDUE invoices are no longer candidates, so
// the sweep is idempotent and produces no duplicate audit records.
func TestSweep_Idempotent(t *testing.T) {
	f := newFixture()
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent,
		decimal.NewFromInt(100), time.Now().AddDate(0, 0, -1))
	sweeper := newSweeper(f, 0)
	ctx := context.Background()

	first, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second)
	assert.Len(t, f.store.activitiesOfType(entity.ActivityStatusChange), 1)
}

// The batch cap bounds one run; the remainder is picked up by the next.
func TestSweep_RespectsBatchLimit(t *testing.T) {
	f := newFixture()
	pastDue := time.Now().AddDate(0, 0, -3)
	f.seedInvoice("inv-1", "INV-0001", entity.InvoiceStatusSent, decimal.NewFromInt(100), pastDue)
	f.seedInvoice("inv-2", "INV-0002", entity.InvoiceStatusSent, decimal.NewFromInt(100), pastDue.AddDate(0, 0, 1))
	f.seedInvoice("inv-3", "INV-0003", entity.InvoiceStatusSent, decimal.NewFromInt(100), pastDue.AddDate(0, 0, 2))
	sweeper := newSweeper(f, 2)
	ctx := context.Background()

	n, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSweep_EmptyLedger(t *testing.T) {
	f := newFixture()

	n, err := newSweeper(f, 0).RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
