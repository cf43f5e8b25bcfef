package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/status"
)

func TestJobs_HappyPath(t *testing.T) {
	m := status.Jobs()
	path := []string{
		entity.JobStatusLead,
		entity.JobStatusQuoted,
		entity.JobStatusScheduled,
		entity.JobStatusInProgress,
		entity.JobStatusCompleted,
	}
	for i := 0; i < len(path)-1; i++ {
		changed, err := m.Transition(path[i], path[i+1])
		require.NoError(t, err, "%s -> %s", path[i], path[i+1])
		assert.True(t, changed)
	}
}

func TestJobs_CancelFromAnyNonTerminal(t *testing.T) {
	m := status.Jobs()
	for _, from := range []string{
		entity.JobStatusLead, entity.JobStatusQuoted,
		entity.JobStatusScheduled, entity.JobStatusInProgress,
	} {
		changed, err := m.Transition(from, entity.JobStatusCancelled)
		require.NoError(t, err, "cancel from %s", from)
		assert.True(t, changed)
	}
}

func TestJobs_IllegalJumps(t *testing.T) {
	m := status.Jobs()
	tests := []struct{ from, to string }{
		{entity.JobStatusLead, entity.JobStatusCompleted},
		{entity.JobStatusQuoted, entity.JobStatusInProgress},
		{entity.JobStatusCompleted, entity.JobStatusInProgress},
		{entity.JobStatusCancelled, entity.JobStatusLead},
		{entity.JobStatusCompleted, entity.JobStatusCancelled}, // terminal
	}
	for _, tt := range tests {
		_, err := m.Transition(tt.from, tt.to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
	}
}

func TestInvoices_PaymentAndOverdueTriggers(t *testing.T) {
	m := status.Invoices()
	legal := []struct{ from, to string }{
		{entity.InvoiceStatusDraft, entity.InvoiceStatusSent},
		{entity.InvoiceStatusSent, entity.InvoiceStatusPartial},
		{entity.InvoiceStatusSent, entity.InvoiceStatusPaid},
		{entity.InvoiceStatusSent, entity.InvoiceStatusOverdue},
		{entity.InvoiceStatusPartial, entity.InvoiceStatusPaid},
		{entity.InvoiceStatusPartial, entity.InvoiceStatusOverdue},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPartial},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid},
		{entity.InvoiceStatusSent, entity.InvoiceStatusCancelled},
	}
	for _, tt := range legal {
		changed, err := m.Transition(tt.from, tt.to)
		require.NoError(t, err, "%s -> %s", tt.from, tt.to)
		assert.True(t, changed)
	}
}

func TestInvoices_TerminalStates(t *testing.T) {
	m := status.Invoices()
	assert.True(t, m.Terminal(entity.InvoiceStatusPaid))
	assert.True(t, m.Terminal(entity.InvoiceStatusCancelled))

	_, err := m.Transition(entity.InvoiceStatusPaid, entity.InvoiceStatusSent)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = m.Transition(entity.InvoiceStatusCancelled, entity.InvoiceStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	// A paid invoice cannot even be cancelled.
	_, err = m.Transition(entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Payments are accepted on a draft (counter sale paid before sending), so
// DRAFT can move straight to PARTIAL or PAID; OVERDUE cannot return to DRAFT.
func TestInvoices_DraftPaymentEdges(t *testing.T) {
	m := status.Invoices()
	for _, to := range []string{entity.InvoiceStatusPartial, entity.InvoiceStatusPaid} {
		changed, err := m.Transition(entity.InvoiceStatusDraft, to)
		require.NoError(t, err, "DRAFT -> %s", to)
		assert.True(t, changed)
	}
	_, err := m.Transition(entity.InvoiceStatusOverdue, entity.InvoiceStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	// A draft is never overdue; it has not been sent.
	_, err = m.Transition(entity.InvoiceStatusDraft, entity.InvoiceStatusOverdue)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Setting a status to its current value is legal but reports no change, so
// no audit record is written for it.
func TestTransition_SameStatusIsNoOp(t *testing.T) {
	changed, err := status.Jobs().Transition(entity.JobStatusScheduled, entity.JobStatusScheduled)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = status.Invoices().Transition(entity.InvoiceStatusPartial, entity.InvoiceStatusPartial)
	require.NoError(t, err)
	assert.False(t, changed)

	// Even terminal states: re-asserting them is not an error.
	changed, err = status.Invoices().Transition(entity.InvoiceStatusPaid, entity.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTransition_UnknownStatus(t *testing.T) {
	_, err := status.Jobs().Transition(entity.JobStatusLead, "ARCHIVED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = status.Invoices().Transition("BOGUS", entity.InvoiceStatusSent)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
