package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/intecelectric/crm-api/internal/application/dto"
	"github.com/intecelectric/crm-api/internal/domain"
	domainbilling "github.com/intecelectric/crm-api/internal/domain/billing"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
	"github.com/intecelectric/crm-api/internal/domain/status"
)

// Update mutates an invoice in one transaction: dates, notes, tax rate,
// wholesale line-item replacement with total recomputation, and an explicit
// status transition through the state machine. A PAID invoice is immutable.
func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateInvoiceRequest) (*entity.Invoice, error) {
	var updated *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityRepository,
		_ repository.SequenceRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status == entity.InvoiceStatusPaid {
			return fmt.Errorf("invoice %s is paid and locked: %w", inv.InvoiceNumber, domain.ErrInvalidState)
		}

		if in.IssueDate != nil {
			if inv.IssueDate, err = dto.ParseDate(*in.IssueDate); err != nil {
				return err
			}
		}
		if in.DueDate != nil {
			if inv.DueDate, err = dto.ParseDate(*in.DueDate); err != nil {
				return err
			}
		}
		if in.Notes != nil {
			inv.Notes = *in.Notes
		}
		if in.TaxRate != nil {
			inv.TaxRate = *in.TaxRate
		}

		// Replace line items wholesale and recompute totals so the invoice
		// invariants hold within this same transaction.
		if in.LineItems != nil || in.TaxRate != nil {
			items := inv.LineItems
			if in.LineItems != nil {
				if items, err = normalizeLineItems(*in.LineItems); err != nil {
					return err
				}
				if len(items) == 0 {
					return fmt.Errorf("at least one line item required: %w", domain.ErrInvalidInput)
				}
				if err := invoiceRepo.ReplaceLineItems(inv.ID, items); err != nil {
					return err
				}
				if err := activityRepo.Create(&entity.Activity{
					ID:          uuid.New().String(),
					Type:        entity.ActivityLineItemsUpdated,
					Description: fmt.Sprintf("Invoice %s line items replaced (%d lines)", inv.InvoiceNumber, len(items)),
					InvoiceID:   inv.ID,
					JobID:       inv.JobID,
					UserID:      userID,
					CreatedAt:   time.Now(),
				}); err != nil {
					return err
				}
			} else if items, err = invoiceRepo.ListLineItems(inv.ID); err != nil {
				return err
			}
			totals, err := domainbilling.ComputeTotals(items, inv.TaxRate)
			if err != nil {
				return err
			}
			inv.Subtotal = totals.Subtotal
			inv.TaxAmount = totals.TaxAmount
			inv.Total = totals.Total
			inv.BalanceDue = domainbilling.BalanceDue(inv.Total, inv.AmountPaid)
			inv.LineItems = items
		}

		if in.Status != nil {
			changed, err := status.Invoices().Transition(inv.Status, *in.Status)
			if err != nil {
				return err
			}
			if changed {
				from := inv.Status
				inv.Status = *in.Status
				if err := activityRepo.Create(statusChangeActivity(inv, from, inv.Status, userID)); err != nil {
					return err
				}
			}
		}

		inv.UpdatedAt = time.Now()
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// statusChangeActivity builds the single audit record every effective status
// change must produce, with {from, to} metadata.
func statusChangeActivity(inv *entity.Invoice, from, to, userID string) *entity.Activity {
	return &entity.Activity{
		ID:          uuid.New().String(),
		Type:        entity.ActivityStatusChange,
		Description: fmt.Sprintf("Invoice %s status changed to %s", inv.InvoiceNumber, to),
		Metadata:    map[string]string{"from": from, "to": to},
		InvoiceID:   inv.ID,
		JobID:       inv.JobID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}
