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

func li(desc string, qty, unit int64) dto.LineItemRequest {
	return dto.LineItemRequest{
		Description: desc,
		Quantity:    decimal.NewFromInt(qty),
		UnitPrice:   decimal.NewFromInt(unit),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creation: numbering, totals, audit
// ──────────────────────────────────────────────────────────────────────────────

// A 200.00 subtotal at the seeded 7% default rate must land at 14.00 tax and
// a 214.00 total, with the first number of the INV series.
func TestCreateInvoice_TotalsAndNumbering(t *testing.T) {
	f := newFixture()

	inv, err := f.uc.Create(context.Background(), testActorID, dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		JobID:      testJobID,
		LineItems: []dto.LineItemRequest{
			li("Panel upgrade", 1, 150),
			li("Service call", 2, 25),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal = %s", inv.Subtotal)
	assert.True(t, inv.TaxAmount.Equal(decimal.NewFromInt(14)), "tax = %s", inv.TaxAmount)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(214)), "total = %s", inv.Total)
	assert.True(t, inv.AmountPaid.IsZero())
	assert.True(t, inv.BalanceDue.Equal(inv.Total), "a fresh invoice owes its full total")

	// Read fields come back populated for the response.
	assert.Equal(t, "Harbor Point Marina", inv.CustomerName)
	assert.Equal(t, "JOB-0001", inv.JobNumber)
	require.Len(t, inv.LineItems, 2)

	// Exactly one INVOICE_CREATED audit record, attributed to the actor.
	created := f.store.activitiesOfType(entity.ActivityInvoiceCreated)
	require.Len(t, created, 1)
	assert.Equal(t, testActorID, created[0].UserID)
	assert.Equal(t, inv.ID, created[0].InvoiceID)
	assert.Contains(t, created[0].Description, "INV-0001")
	assert.Contains(t, created[0].Description, "$214.00")
}

// Numbers must be sequential across invoices.
func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{li("Outlet repair", 1, 95)},
	}
	first, err := f.uc.Create(ctx, testActorID, req)
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, testActorID, req)
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", first.InvoiceNumber)
	assert.Equal(t, "INV-0002", second.InvoiceNumber)
}

// When the allocated number already exists (counter reset or manual insert),
// creation must re-allocate and succeed instead of failing.
func TestCreateInvoice_NumberCollisionRetries(t *testing.T) {
	f := newFixture()
	f.seedInvoice("pre-existing", "INV-0001", entity.InvoiceStatusDraft,
		decimal.NewFromInt(50), time.Now().AddDate(0, 1, 0))
	// The counter still reads zero, so the first allocation collides.

	inv, err := f.uc.Create(context.Background(), testActorID, dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{li("Breaker replacement", 1, 120)},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", inv.InvoiceNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tax rate resolution
// ──────────────────────────────────────────────────────────────────────────────

// An explicit rate on the request wins over the configured default.
func TestCreateInvoice_ExplicitTaxRateOverridesDefault(t *testing.T) {
	f := newFixture()

	zero := decimal.Zero
	inv, err := f.uc.Create(context.Background(), testActorID, dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		TaxRate:    &zero,
		LineItems:  []dto.LineItemRequest{li("Fixture install", 1, 300)},
	})
	require.NoError(t, err)

	assert.True(t, inv.TaxAmount.IsZero())
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(300)))
}

// A missing or unparseable default falls back to zero tax.
func TestCreateInvoice_NoDefaultRateMeansNoTax(t *testing.T) {
	f := newFixture()
	delete(f.store.settings, entity.SettingDefaultTaxRate)

	inv, err := f.uc.Create(context.Background(), testActorID, dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{li("Fixture install", 1, 300)},
	})
	require.NoError(t, err)
	assert.True(t, inv.TaxAmount.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Dates
// ──────────────────────────────────────────────────────────────────────────────

// Without an explicit due date the invoice is Net 30 from its issue date.
func TestCreateInvoice_DefaultDueDateNet30(t *testing.T) {
	f := newFixture()

	inv, err := f.uc.Create(context.Background(), testActorID, dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		IssueDate:  "2026-03-01",
		LineItems:  []dto.LineItemRequest{li("Trenching", 4, 80)},
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", inv.IssueDate.Format("2006-01-02"))
	assert.Equal(t, "2026-03-31", inv.DueDate.Format("2006-01-02"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validation
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_RequiresCustomer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	items := []dto.LineItemRequest{li("Service call", 1, 95)}

	_, err := f.uc.Create(ctx, testActorID, dto.CreateInvoiceRequest{LineItems: items})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "empty customer id must be rejected")

	_, err = f.uc.Create(ctx, testActorID, dto.CreateInvoiceRequest{CustomerID: "no-such", LineItems: items})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown customer must be rejected")
}

func TestCreateInvoice_RequiresKnownJob(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), testActorID, dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		JobID:      "no-such",
		LineItems:  []dto.LineItemRequest{li("Service call", 1, 95)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Blank-description rows are dropped during normalization; an invoice with
// nothing left is invalid.
func TestCreateInvoice_RequiresLineItems(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, testActorID, dto.CreateInvoiceRequest{CustomerID: testCustomerID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, testActorID, dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems:  []dto.LineItemRequest{li("", 1, 95)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "all-blank rows leave nothing to bill")
}

func TestCreateInvoice_RejectsNegativeQuantity(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), testActorID, dto.CreateInvoiceRequest{
		CustomerID: testCustomerID,
		LineItems: []dto.LineItemRequest{{
			Description: "Service call",
			Quantity:    decimal.NewFromInt(-1),
			UnitPrice:   decimal.NewFromInt(95),
		}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
