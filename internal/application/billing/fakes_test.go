package billing_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/intecelectric/crm-api/internal/application/billing"
	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
	"github.com/intecelectric/crm-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore is the in-memory database shared by all fakes. Reads hand out
// copies so that mutations only land through Update, the way a real row read
// would behave.
type fakeStore struct {
	invoices   map[string]*entity.Invoice
	lineItems  map[string][]*entity.LineItem
	payments   map[string][]*entity.Payment
	activities []*entity.Activity
	customers  map[string]*entity.Customer
	jobs       map[string]*entity.Job
	settings   map[string]string
	sequences  map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		invoices:  map[string]*entity.Invoice{},
		lineItems: map[string][]*entity.LineItem{},
		payments:  map[string][]*entity.Payment{},
		customers: map[string]*entity.Customer{},
		jobs:      map[string]*entity.Job{},
		settings:  map[string]string{},
		sequences: map[string]int64{},
	}
}

// activitiesOfType filters the recorded audit trail.
func (s *fakeStore) activitiesOfType(typ string) []*entity.Activity {
	var out []*entity.Activity
	for _, a := range s.activities {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

// ── invoice repository ──

type fakeInvoiceRepo struct{ s *fakeStore }

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	for _, existing := range r.s.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return fmt.Errorf("invoice number %s taken: %w", inv.InvoiceNumber, domain.ErrConflict)
		}
	}
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	cp.PaymentCount = len(r.s.payments[id])
	// The real repository joins these in.
	if c, ok := r.s.customers[cp.CustomerID]; ok {
		cp.CustomerName = c.Name
		cp.CustomerEmail = c.Email
	}
	if j, ok := r.s.jobs[cp.JobID]; ok {
		cp.JobNumber = j.JobNumber
		cp.JobTitle = j.Title
	}
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) List(f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber < out[j].InvoiceNumber })
	return out, len(out), nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.s.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	delete(r.s.invoices, id)
	delete(r.s.lineItems, id)
	delete(r.s.payments, id)
	return nil
}

func (r *fakeInvoiceRepo) ReplaceLineItems(invoiceID string, items []*entity.LineItem) error {
	r.s.lineItems[invoiceID] = items
	return nil
}

func (r *fakeInvoiceRepo) ListLineItems(invoiceID string) ([]*entity.LineItem, error) {
	return r.s.lineItems[invoiceID], nil
}

func (r *fakeInvoiceRepo) CreatePayment(p *entity.Payment) error {
	cp := *p
	r.s.payments[p.InvoiceID] = append(r.s.payments[p.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) ListPayments(invoiceID string) ([]*entity.Payment, error) {
	return r.s.payments[invoiceID], nil
}

func (r *fakeInvoiceRepo) ListOverdueCandidates(now time.Time, limit int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.Status != entity.InvoiceStatusSent && inv.Status != entity.InvoiceStatusPartial {
			continue
		}
		if !inv.DueDate.Before(now) {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── activity repository ──

type fakeActivityRepo struct{ s *fakeStore }

func (r *fakeActivityRepo) Create(a *entity.Activity) error {
	cp := *a
	r.s.activities = append(r.s.activities, &cp)
	return nil
}

func (r *fakeActivityRepo) List(f repository.ActivityFilter) ([]*entity.Activity, int, error) {
	var out []*entity.Activity
	for _, a := range r.s.activities {
		if f.InvoiceID != "" && a.InvoiceID != f.InvoiceID {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		out = append(out, a)
	}
	total := len(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

// ── sequence repository ──

type fakeSequenceRepo struct{ s *fakeStore }

func (r *fakeSequenceRepo) Next(series string) (int64, error) {
	r.s.sequences[series]++
	return r.s.sequences[series], nil
}

// ── customer / job repositories (only the lookup path is exercised) ──

type fakeCustomerRepo struct {
	repository.CustomerRepository
	s *fakeStore
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

type fakeJobRepo struct {
	repository.JobRepository
	s *fakeStore
}

func (r *fakeJobRepo) GetByID(id string) (*entity.Job, error) {
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, nil
	}
	return j, nil
}

// ── setting repository ──

type fakeSettingRepo struct{ s *fakeStore }

func (r *fakeSettingRepo) GetAll() (map[string]string, error) { return r.s.settings, nil }
func (r *fakeSettingRepo) Get(key string) (string, error)     { return r.s.settings[key], nil }
func (r *fakeSettingRepo) Upsert(key, value string) error {
	r.s.settings[key] = value
	return nil
}

// ── transaction runner ──

// fakeTxRunner hands the callback repositories bound to the shared store.
// There is no rollback; tests that exercise failure paths fail before any
// prior write in the same callback.
type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	activityRepo repository.ActivityRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	return fn(&fakeInvoiceRepo{s: t.s}, &fakeActivityRepo{s: t.s}, &fakeSequenceRepo{s: t.s})
}

// ── collaborators ──

type fakeEmailSender struct {
	sent    bool
	err     error
	calls   int
	lastPDF []byte
}

func (e *fakeEmailSender) SendInvoice(inv *entity.Invoice, settings map[string]string, pdf []byte) (bool, error) {
	e.calls++
	e.lastPDF = pdf
	return e.sent, e.err
}

type fakePDFGenerator struct {
	out []byte
	err error
}

func (g *fakePDFGenerator) GenerateInvoicePDF(inv *entity.Invoice, settings map[string]string) ([]byte, error) {
	return g.out, g.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCustomerID = "c-0001"
	testJobID      = "j-0001"
	testActorID    = "u-0001"
)

type fixture struct {
	store *fakeStore
	email *fakeEmailSender
	pdf   *fakePDFGenerator
	uc    *billing.InvoiceUseCase
}

// newFixture wires a use case over fresh fakes with one customer, one job and
// the 7% default tax rate seeded.
func newFixture() *fixture {
	store := newFakeStore()
	store.customers[testCustomerID] = &entity.Customer{
		ID:    testCustomerID,
		Name:  "Harbor Point Marina",
		Email: "office@harborpointmarina.com",
		Type:  entity.CustomerCommercial,
	}
	store.jobs[testJobID] = &entity.Job{
		ID:         testJobID,
		JobNumber:  "JOB-0001",
		Title:      "Dock lighting rewire",
		CustomerID: testCustomerID,
	}
	store.settings[entity.SettingDefaultTaxRate] = "7"

	email := &fakeEmailSender{sent: true}
	pdf := &fakePDFGenerator{out: []byte("%PDF-1.4 fake")}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := billing.NewInvoiceUseCase(
		&fakeTxRunner{s: store},
		&fakeInvoiceRepo{s: store},
		&fakeCustomerRepo{s: store},
		&fakeJobRepo{s: store},
		&fakeActivityRepo{s: store},
		&fakeSettingRepo{s: store},
		email, pdf, log,
	)
	return &fixture{store: store, email: email, pdf: pdf, uc: uc}
}

// seedInvoice places an invoice directly in the store, bypassing the use case.
func (f *fixture) seedInvoice(id, number, status string, total decimal.Decimal, dueDate time.Time) *entity.Invoice {
	inv := &entity.Invoice{
		ID:            id,
		InvoiceNumber: number,
		Status:        status,
		IssueDate:     dueDate.AddDate(0, 0, -30),
		DueDate:       dueDate,
		Subtotal:      total,
		TaxRate:       decimal.Zero,
		TaxAmount:     decimal.Zero,
		Total:         total,
		AmountPaid:    decimal.Zero,
		BalanceDue:    total,
		CustomerID:    testCustomerID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.store.invoices[id] = inv
	return inv
}
