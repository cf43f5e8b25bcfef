// Package status enforces the job and invoice status state machines. Each
// machine is a directed transition table; a requested move is either a no-op
// (same status), legal, or ErrInvalidTransition. The legacy system accepted
// any jump between statuses; the tables below are the intended graphs, now
// enforced.
package status

import (
	"fmt"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
)

// Machine validates transitions for one entity type.
type Machine struct {
	name        string
	transitions map[string][]string
}

var jobMachine = &Machine{
	name: "job",
	transitions: map[string][]string{
		entity.JobStatusLead:       {entity.JobStatusQuoted, entity.JobStatusScheduled, entity.JobStatusCancelled},
		entity.JobStatusQuoted:     {entity.JobStatusScheduled, entity.JobStatusCancelled},
		entity.JobStatusScheduled:  {entity.JobStatusInProgress, entity.JobStatusCancelled},
		entity.JobStatusInProgress: {entity.JobStatusCompleted, entity.JobStatusCancelled},
		entity.JobStatusCompleted:  {},
		entity.JobStatusCancelled:  {},
	},
}

var invoiceMachine = &Machine{
	name: "invoice",
	transitions: map[string][]string{
		entity.InvoiceStatusDraft:     {entity.InvoiceStatusSent, entity.InvoiceStatusPartial, entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled},
		entity.InvoiceStatusSent:      {entity.InvoiceStatusPartial, entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled},
		entity.InvoiceStatusPartial:   {entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled},
		entity.InvoiceStatusOverdue:   {entity.InvoiceStatusPartial, entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled},
		entity.InvoiceStatusPaid:      {},
		entity.InvoiceStatusCancelled: {},
	},
}

// Jobs returns the job status machine.
func Jobs() *Machine { return jobMachine }

// Invoices returns the invoice status machine.
func Invoices() *Machine { return invoiceMachine }

// Known reports whether s is a state of this machine.
func (m *Machine) Known(s string) bool {
	_, ok := m.transitions[s]
	return ok
}

// Terminal reports whether s admits no further transitions.
func (m *Machine) Terminal(s string) bool {
	next, ok := m.transitions[s]
	return ok && len(next) == 0
}

// Transition validates a move from one status to another. A same-status
// request returns (false, nil): legal, but not a change, so callers must not
// emit an audit record for it. A legal change returns (true, nil).
func (m *Machine) Transition(from, to string) (changed bool, err error) {
	if !m.Known(to) {
		return false, fmt.Errorf("unknown %s status %q: %w", m.name, to, domain.ErrInvalidInput)
	}
	if !m.Known(from) {
		return false, fmt.Errorf("unknown %s status %q: %w", m.name, from, domain.ErrInvalidInput)
	}
	if from == to {
		return false, nil
	}
	for _, next := range m.transitions[from] {
		if next == to {
			return true, nil
		}
	}
	return false, fmt.Errorf("%s status %s -> %s: %w", m.name, from, to, domain.ErrInvalidTransition)
}
