package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/intecelectric/crm-api/internal/application/dto"
	"github.com/intecelectric/crm-api/internal/domain"
	domainbilling "github.com/intecelectric/crm-api/internal/domain/billing"
	"github.com/intecelectric/crm-api/internal/domain/docnum"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
	"github.com/intecelectric/crm-api/pkg/money"
)

// maxNumberAttempts bounds the retry loop when an allocated document number
// collides at insert time. The counter table makes collisions effectively
// impossible; the unique constraint plus this retry is the second line of
// defense.
const maxNumberAttempts = 3

// Create numbers, prices and persists a new invoice in one transaction, and
// records the INVOICE_CREATED activity before the transaction commits.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("customer required: %w", domain.ErrInvalidInput)
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", in.CustomerID, domain.ErrNotFound)
	}

	var job *entity.Job
	if in.JobID != "" {
		if job, err = uc.jobRepo.GetByID(in.JobID); err != nil {
			return nil, err
		}
		if job == nil {
			return nil, fmt.Errorf("job %s: %w", in.JobID, domain.ErrNotFound)
		}
	}

	items, err := normalizeLineItems(in.LineItems)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one line item required: %w", domain.ErrInvalidInput)
	}

	taxRate, err := uc.resolveTaxRate(in.TaxRate)
	if err != nil {
		return nil, err
	}
	totals, err := domainbilling.ComputeTotals(items, taxRate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	issueDate := now
	if in.IssueDate != "" {
		if issueDate, err = dto.ParseDate(in.IssueDate); err != nil {
			return nil, err
		}
	}
	dueDate := issueDate.AddDate(0, 0, 30) // Net 30 default
	if in.DueDate != "" {
		if dueDate, err = dto.ParseDate(in.DueDate); err != nil {
			return nil, err
		}
	}

	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		Status:     entity.InvoiceStatusDraft,
		IssueDate:  issueDate,
		DueDate:    dueDate,
		Subtotal:   totals.Subtotal,
		TaxRate:    taxRate,
		TaxAmount:  totals.TaxAmount,
		Total:      totals.Total,
		AmountPaid: decimal.Zero,
		BalanceDue: totals.Total,
		Notes:      in.Notes,
		CustomerID: in.CustomerID,
		JobID:      in.JobID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for attempt := 1; ; attempt++ {
		err = uc.txRunner.RunBilling(ctx, func(
			invoiceRepo repository.InvoiceRepository,
			activityRepo repository.ActivityRepository,
			seqRepo repository.SequenceRepository,
		) error {
			n, err := seqRepo.Next(docnum.SeriesInvoice)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = docnum.Format(docnum.SeriesInvoice, n)

			if err := invoiceRepo.Create(inv); err != nil {
				return err
			}
			if err := invoiceRepo.ReplaceLineItems(inv.ID, items); err != nil {
				return err
			}
			return activityRepo.Create(&entity.Activity{
				ID:          uuid.New().String(),
				Type:        entity.ActivityInvoiceCreated,
				Description: fmt.Sprintf("Invoice %s created for %s", inv.InvoiceNumber, money.Format(inv.Total)),
				InvoiceID:   inv.ID,
				JobID:       inv.JobID,
				UserID:      userID,
				CreatedAt:   time.Now(),
			})
		})
		if errors.Is(err, domain.ErrConflict) && attempt < maxNumberAttempts {
			uc.log.Warn().Str("invoice_number", inv.InvoiceNumber).Int("attempt", attempt).
				Msg("invoice number collision, retrying allocation")
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	inv.CustomerName = customer.Name
	inv.CustomerEmail = customer.Email
	if job != nil {
		inv.JobNumber = job.JobNumber
		inv.JobTitle = job.Title
	}
	inv.LineItems = items
	return inv, nil
}

// resolveTaxRate falls back to the configured default when the request does
// not carry a rate.
func (uc *InvoiceUseCase) resolveTaxRate(requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested != nil {
		return *requested, nil
	}
	raw, err := uc.settingRepo.Get(entity.SettingDefaultTaxRate)
	if err != nil || raw == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, nil
	}
	return rate, nil
}

// normalizeLineItems maps wire rows into the domain calculator.
func normalizeLineItems(in []dto.LineItemRequest) ([]*entity.LineItem, error) {
	rows := make([]domainbilling.LineItemInput, 0, len(in))
	for _, li := range in {
		rows = append(rows, domainbilling.LineItemInput{
			Description:    li.Description,
			Quantity:       li.Quantity,
			UnitPrice:      li.UnitPrice,
			AmountOverride: li.Amount,
		})
	}
	return domainbilling.Normalize(rows)
}
