package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
	"github.com/intecelectric/crm-api/internal/domain/status"
)

// Send emails the invoice to the customer and marks it SENT. Email delivery
// is a collaborator call: its failure is logged and reported in the response,
// but never blocks or rolls back the status transition.
func (uc *InvoiceUseCase) Send(ctx context.Context, userID, id string) (emailSent bool, err error) {
	inv, _, err := uc.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if changed, err := status.Invoices().Transition(inv.Status, entity.InvoiceStatusSent); err != nil {
		return false, err
	} else if !changed {
		// Already SENT: re-sending the email is fine, but there is no
		// transition and no duplicate audit record.
		emailSent = uc.dispatchInvoiceEmail(inv)
		return emailSent, nil
	}

	emailSent = uc.dispatchInvoiceEmail(inv)

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityRepository,
		_ repository.SequenceRepository,
	) error {
		locked, err := invoiceRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		changed, err := status.Invoices().Transition(locked.Status, entity.InvoiceStatusSent)
		if err != nil {
			return err
		}
		if !changed {
			return nil // raced with another send; nothing to record
		}
		from := locked.Status
		locked.Status = entity.InvoiceStatusSent
		locked.UpdatedAt = time.Now()
		if err := invoiceRepo.Update(locked); err != nil {
			return err
		}
		if err := activityRepo.Create(statusChangeActivity(locked, from, entity.InvoiceStatusSent, userID)); err != nil {
			return err
		}
		to := inv.CustomerEmail
		if to == "" {
			to = "customer"
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			Type:        entity.ActivityInvoiceSent,
			Description: fmt.Sprintf("Invoice %s sent to %s", locked.InvoiceNumber, to),
			InvoiceID:   locked.ID,
			JobID:       locked.JobID,
			UserID:      userID,
			CreatedAt:   time.Now(),
		})
	})
	if err != nil {
		return emailSent, err
	}
	return emailSent, nil
}

// dispatchInvoiceEmail attempts delivery with a PDF attachment and swallows
// every failure into the log.
func (uc *InvoiceUseCase) dispatchInvoiceEmail(inv *entity.Invoice) bool {
	settings, err := uc.settingRepo.GetAll()
	if err != nil {
		uc.log.Error().Err(err).Str("invoice", inv.InvoiceNumber).Msg("load settings for invoice email")
		return false
	}
	var attachment []byte
	if uc.pdf != nil {
		if attachment, err = uc.pdf.GenerateInvoicePDF(inv, settings); err != nil {
			uc.log.Error().Err(err).Str("invoice", inv.InvoiceNumber).Msg("invoice pdf attachment failed")
			attachment = nil
		}
	}
	sent, err := uc.email.SendInvoice(inv, settings, attachment)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice", inv.InvoiceNumber).Msg("invoice email failed (invoice still marked sent)")
		return false
	}
	return sent
}
