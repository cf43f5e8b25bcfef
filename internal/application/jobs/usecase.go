package jobs

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
	"github.com/intecelectric/crm-api/internal/domain/status"
	"github.com/intecelectric/crm-api/pkg/logger"
)

// maxNumberAttempts bounds the retry loop on a job number collision at
// insert time; the counter table makes collisions effectively impossible.
const maxNumberAttempts = 3

// UseCase drives jobs: sequential numbering, the job status machine, crew
// assignment and work-order notifications, all audited.
type UseCase struct {
	txRunner     TxRunner
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	crewRepo     repository.CrewRepository
	activityRepo repository.ActivityRepository
	settingRepo  repository.SettingRepository
	notifier     WorkOrderNotifier
	log          *logger.Logger
}

// NewUseCase wires the use case.
func NewUseCase(
	txRunner TxRunner,
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	crewRepo repository.CrewRepository,
	activityRepo repository.ActivityRepository,
	settingRepo repository.SettingRepository,
	notifier WorkOrderNotifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		jobRepo:      jobRepo,
		customerRepo: customerRepo,
		crewRepo:     crewRepo,
		activityRepo: activityRepo,
		settingRepo:  settingRepo,
		notifier:     notifier,
		log:          log,
	}
}

// Create numbers and persists a new job in one transaction, records the
// JOB_CREATED activity, and fires the work-order notification when flagged.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateJobRequest) (*entity.Job, error) {
	if in.Title == "" || in.CustomerID == "" {
		return nil, fmt.Errorf("title and customer required: %w", domain.ErrInvalidInput)
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", in.CustomerID, domain.ErrNotFound)
	}

	jobStatus := in.Status
	if jobStatus == "" {
		jobStatus = entity.JobStatusLead
	}
	if !status.Jobs().Known(jobStatus) {
		return nil, fmt.Errorf("unknown job status %q: %w", jobStatus, domain.ErrInvalidInput)
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !entity.ValidJobPriority(priority) {
		return nil, fmt.Errorf("unknown priority %q: %w", priority, domain.ErrInvalidInput)
	}

	items, err := normalizeLineItems(in.LineItems)
	if err != nil {
		return nil, err
	}

	var scheduled *time.Time
	if in.ScheduledDate != "" {
		t, err := dto.ParseDate(in.ScheduledDate)
		if err != nil {
			return nil, err
		}
		scheduled = &t
	}
	estimated := decimal.Zero
	if in.EstimatedAmount != nil {
		estimated = *in.EstimatedAmount
	}

	now := time.Now()
	job := &entity.Job{
		ID:              uuid.New().String(),
		Title:           in.Title,
		Description:     in.Description,
		Status:          jobStatus,
		Priority:        priority,
		Address:         in.Address,
		City:            in.City,
		State:           in.State,
		Zip:             in.Zip,
		ScheduledDate:   scheduled,
		EstimatedAmount: estimated,
		ActualAmount:    decimal.Zero,
		Notes:           in.Notes,
		IsWorkOrder:     in.IsWorkOrder,
		WorkOrderEmail:  in.WorkOrderEmail,
		CustomerID:      in.CustomerID,
		CreatedByID:     userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for attempt := 1; ; attempt++ {
		err = uc.txRunner.RunJobs(ctx, func(
			jobRepo repository.JobRepository,
			activityRepo repository.ActivityRepository,
			seqRepo repository.SequenceRepository,
		) error {
			n, err := seqRepo.Next(docnum.SeriesJob)
			if err != nil {
				return err
			}
			job.JobNumber = docnum.Format(docnum.SeriesJob, n)

			if err := jobRepo.Create(job); err != nil {
				return err
			}
			if len(items) > 0 {
				if err := jobRepo.ReplaceLineItems(job.ID, items); err != nil {
					return err
				}
			}
			if err := activityRepo.Create(&entity.Activity{
				ID:          uuid.New().String(),
				Type:        entity.ActivityJobCreated,
				Description: fmt.Sprintf("Job %s created: %s", job.JobNumber, job.Title),
				JobID:       job.ID,
				UserID:      userID,
				CreatedAt:   time.Now(),
			}); err != nil {
				return err
			}
			if job.IsWorkOrder {
				return activityRepo.Create(&entity.Activity{
					ID:          uuid.New().String(),
					Type:        entity.ActivityWorkOrderReceived,
					Description: fmt.Sprintf("Work order received: %s — %s", job.JobNumber, job.Title),
					JobID:       job.ID,
					UserID:      userID,
					CreatedAt:   time.Now(),
				})
			}
			return nil
		})
		if errors.Is(err, domain.ErrConflict) && attempt < maxNumberAttempts {
			uc.log.Warn().Str("job_number", job.JobNumber).Int("attempt", attempt).
				Msg("job number collision, retrying allocation")
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	job.CustomerName = customer.Name
	job.LineItems = items

	if job.IsWorkOrder {
		uc.notifyWorkOrder(job)
	}
	return job, nil
}

// Update mutates a job in one transaction, running any requested status
// change through the state machine and replacing line items wholesale.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateJobRequest) (*entity.Job, error) {
	var updated *entity.Job
	err := uc.txRunner.RunJobs(ctx, func(
		jobRepo repository.JobRepository,
		activityRepo repository.ActivityRepository,
		_ repository.SequenceRepository,
	) error {
		job, err := jobRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.ErrNotFound
		}

		if in.Title != nil {
			job.Title = *in.Title
		}
		if in.Description != nil {
			job.Description = *in.Description
		}
		if in.Priority != nil {
			if !entity.ValidJobPriority(*in.Priority) {
				return fmt.Errorf("unknown priority %q: %w", *in.Priority, domain.ErrInvalidInput)
			}
			job.Priority = *in.Priority
		}
		if in.Address != nil {
			job.Address = *in.Address
		}
		if in.City != nil {
			job.City = *in.City
		}
		if in.State != nil {
			job.State = *in.State
		}
		if in.Zip != nil {
			job.Zip = *in.Zip
		}
		if in.ScheduledDate != nil {
			t, err := dto.ParseDate(*in.ScheduledDate)
			if err != nil {
				return err
			}
			job.ScheduledDate = &t
		}
		if in.CompletedDate != nil {
			t, err := dto.ParseDate(*in.CompletedDate)
			if err != nil {
				return err
			}
			job.CompletedDate = &t
		}
		if in.EstimatedAmount != nil {
			job.EstimatedAmount = *in.EstimatedAmount
		}
		if in.ActualAmount != nil {
			job.ActualAmount = *in.ActualAmount
		}
		if in.Notes != nil {
			job.Notes = *in.Notes
		}
		if in.IsWorkOrder != nil {
			job.IsWorkOrder = *in.IsWorkOrder
		}
		if in.WorkOrderEmail != nil {
			job.WorkOrderEmail = *in.WorkOrderEmail
		}

		if in.LineItems != nil {
			items, err := normalizeLineItems(*in.LineItems)
			if err != nil {
				return err
			}
			if err := jobRepo.ReplaceLineItems(job.ID, items); err != nil {
				return err
			}
			job.LineItems = items
			if err := activityRepo.Create(&entity.Activity{
				ID:          uuid.New().String(),
				Type:        entity.ActivityLineItemsUpdated,
				Description: fmt.Sprintf("Job %s line items replaced (%d lines)", job.JobNumber, len(items)),
				JobID:       job.ID,
				UserID:      userID,
				CreatedAt:   time.Now(),
			}); err != nil {
				return err
			}
		}

		if in.Status != nil {
			changed, err := status.Jobs().Transition(job.Status, *in.Status)
			if err != nil {
				return err
			}
			if changed {
				from := job.Status
				job.Status = *in.Status
				if job.Status == entity.JobStatusCompleted && job.CompletedDate == nil {
					t := time.Now()
					job.CompletedDate = &t
				}
				if err := activityRepo.Create(&entity.Activity{
					ID:          uuid.New().String(),
					Type:        entity.ActivityStatusChange,
					Description: fmt.Sprintf("Job %s status changed to %s", job.JobNumber, job.Status),
					Metadata:    map[string]string{"from": from, "to": job.Status},
					JobID:       job.ID,
					UserID:      userID,
					CreatedAt:   time.Now(),
				}); err != nil {
					return err
				}
			}
		}

		job.UpdatedAt = time.Now()
		if err := jobRepo.Update(job); err != nil {
			return err
		}
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get loads a full job with line items and crew.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Job, []*entity.Activity, error) {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, domain.ErrNotFound
	}
	if job.LineItems, err = uc.jobRepo.ListLineItems(id); err != nil {
		return nil, nil, err
	}
	if job.Crew, err = uc.jobRepo.ListCrew(id); err != nil {
		return nil, nil, err
	}
	activities, _, err := uc.activityRepo.List(repository.ActivityFilter{JobID: id, Limit: 50})
	if err != nil {
		return nil, nil, err
	}
	return job, activities, nil
}

// List returns a filtered page of jobs.
func (uc *UseCase) List(ctx context.Context, f repository.JobFilter) ([]*entity.Job, int, error) {
	return uc.jobRepo.List(f)
}

// Delete removes a job and its line items; blocked while invoices reference it.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return err
	}
	if job == nil {
		return domain.ErrNotFound
	}
	invoices, err := uc.jobRepo.CountInvoices(id)
	if err != nil {
		return err
	}
	if invoices > 0 {
		return fmt.Errorf("job %s has %d invoice(s): %w", job.JobNumber, invoices, domain.ErrInvalidState)
	}
	return uc.jobRepo.Delete(id)
}

// notifyWorkOrder delivers the work-order alert, swallowing failures into
// the log.
func (uc *UseCase) notifyWorkOrder(job *entity.Job) {
	settings, err := uc.settingRepo.GetAll()
	if err != nil {
		uc.log.Error().Err(err).Str("job", job.JobNumber).Msg("load settings for work order notification")
		return
	}
	if _, err := uc.notifier.SendWorkOrderNotification(job, settings); err != nil {
		uc.log.Error().Err(err).Str("job", job.JobNumber).Msg("work order notification failed")
	}
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
