package billing

import (
	"context"
	"fmt"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
	"github.com/intecelectric/crm-api/pkg/logger"
)

// InvoiceUseCase drives the invoice side of the ledger: creation with
// sequential numbering and decimal totals, line-item replacement, the status
// machine, payments and the send/PDF collaborator flows.
type InvoiceUseCase struct {
	txRunner     TxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	jobRepo      repository.JobRepository
	activityRepo repository.ActivityRepository
	settingRepo  repository.SettingRepository
	email        EmailSender
	pdf          InvoicePDFGenerator
	log          *logger.Logger
}

// NewInvoiceUseCase wires the use case.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	jobRepo repository.JobRepository,
	activityRepo repository.ActivityRepository,
	settingRepo repository.SettingRepository,
	email EmailSender,
	pdf InvoicePDFGenerator,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		jobRepo:      jobRepo,
		activityRepo: activityRepo,
		settingRepo:  settingRepo,
		email:        email,
		pdf:          pdf,
		log:          log,
	}
}

// Get loads a full invoice: line items, payments and its recent audit trail.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Invoice, []*entity.Activity, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	if inv.LineItems, err = uc.invoiceRepo.ListLineItems(id); err != nil {
		return nil, nil, err
	}
	if inv.Payments, err = uc.invoiceRepo.ListPayments(id); err != nil {
		return nil, nil, err
	}
	activities, _, err := uc.activityRepo.List(repository.ActivityFilter{InvoiceID: id, Limit: 30})
	if err != nil {
		return nil, nil, err
	}
	return inv, activities, nil
}

// List returns a filtered page of invoices.
func (uc *InvoiceUseCase) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	return uc.invoiceRepo.List(f)
}

// Delete removes an invoice and, by cascade, its line items and payments.
// A PAID invoice cannot be deleted.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusPaid {
		return fmt.Errorf("delete paid invoice %s: %w", inv.InvoiceNumber, domain.ErrInvalidState)
	}
	return uc.invoiceRepo.Delete(id)
}

// RenderPDF renders the invoice's printable representation. Rendering
// failure surfaces to the caller but never touches invoice state.
func (uc *InvoiceUseCase) RenderPDF(ctx context.Context, id string) ([]byte, *entity.Invoice, error) {
	inv, _, err := uc.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	settings, err := uc.settingRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	pdf, err := uc.pdf.GenerateInvoicePDF(inv, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return pdf, inv, nil
}
