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
	"github.com/intecelectric/crm-api/pkg/money"
)

// ApplyPayment appends a payment and rolls it into the invoice's paid amount,
// balance and status, all inside one transaction against a locked invoice
// row so two concurrent payments can never compute from stale balances.
//
// Overpayment is accepted and clamps the balance at zero. Payments against a
// PAID or CANCELLED invoice are rejected.
func (uc *InvoiceUseCase) ApplyPayment(ctx context.Context, userID, invoiceID string, in dto.RecordPaymentRequest) (*entity.Payment, *entity.Invoice, error) {
	if !in.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("payment amount must be positive: %w", domain.ErrInvalidInput)
	}
	method := in.Method
	if method == "" {
		method = entity.PaymentMethodCheck
	}
	if !entity.ValidPaymentMethod(method) {
		return nil, nil, fmt.Errorf("unknown payment method %q: %w", method, domain.ErrInvalidInput)
	}
	paidAt := time.Now()
	if in.PaidAt != "" {
		var err error
		if paidAt, err = dto.ParseDate(in.PaidAt); err != nil {
			return nil, nil, err
		}
	}

	var payment *entity.Payment
	var updated *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityRepository,
		_ repository.SequenceRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		switch inv.Status {
		case entity.InvoiceStatusPaid:
			return fmt.Errorf("invoice %s is already paid: %w", inv.InvoiceNumber, domain.ErrInvalidState)
		case entity.InvoiceStatusCancelled:
			return fmt.Errorf("invoice %s is cancelled: %w", inv.InvoiceNumber, domain.ErrInvalidState)
		}

		payment = &entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Amount:    in.Amount.Round(2),
			Method:    method,
			Reference: in.Reference,
			Notes:     in.Notes,
			PaidAt:    paidAt,
			CreatedAt: time.Now(),
		}
		if err := invoiceRepo.CreatePayment(payment); err != nil {
			return err
		}

		inv.AmountPaid = inv.AmountPaid.Add(payment.Amount)
		inv.BalanceDue = domainbilling.BalanceDue(inv.Total, inv.AmountPaid)

		next := entity.InvoiceStatusPartial
		if inv.BalanceDue.IsZero() {
			next = entity.InvoiceStatusPaid
		}
		changed, err := status.Invoices().Transition(inv.Status, next)
		if err != nil {
			return err
		}

		desc := fmt.Sprintf("Payment of %s received", money.Format(payment.Amount))
		if payment.Reference != "" {
			desc += fmt.Sprintf(" (%s)", payment.Reference)
		}
		if err := activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			Type:        entity.ActivityPaymentReceived,
			Description: desc,
			InvoiceID:   inv.ID,
			JobID:       inv.JobID,
			UserID:      userID,
			CreatedAt:   time.Now(),
		}); err != nil {
			return err
		}

		if changed {
			from := inv.Status
			inv.Status = next
			if err := activityRepo.Create(statusChangeActivity(inv, from, next, userID)); err != nil {
				return err
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
		return nil, nil, err
	}
	return payment, updated, nil
}
