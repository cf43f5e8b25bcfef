package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// AssignCrew links a crew member to a job and records the assignment.
// Assigning someone already on the job is rejected as a duplicate.
func (uc *UseCase) AssignCrew(ctx context.Context, userID, jobID, crewID string) error {
	member, err := uc.crewRepo.GetByID(crewID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("crew member %s: %w", crewID, domain.ErrNotFound)
	}
	if !member.Active {
		return fmt.Errorf("crew member %s is inactive: %w", member.Name, domain.ErrInvalidState)
	}

	return uc.txRunner.RunJobs(ctx, func(
		jobRepo repository.JobRepository,
		activityRepo repository.ActivityRepository,
		_ repository.SequenceRepository,
	) error {
		job, err := jobRepo.GetByIDForUpdate(jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.ErrNotFound
		}
		assigned, err := jobRepo.IsCrewAssigned(jobID, crewID)
		if err != nil {
			return err
		}
		if assigned {
			return fmt.Errorf("%s is already assigned to %s: %w", member.Name, job.JobNumber, domain.ErrDuplicate)
		}
		if err := jobRepo.AssignCrew(jobID, crewID); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			Type:        entity.ActivityCrewAssigned,
			Description: fmt.Sprintf("%s assigned to job %s", member.Name, job.JobNumber),
			JobID:       job.ID,
			UserID:      userID,
			CreatedAt:   time.Now(),
		})
	})
}

// RemoveCrew unlinks a crew member from a job.
func (uc *UseCase) RemoveCrew(ctx context.Context, userID, jobID, crewID string) error {
	member, err := uc.crewRepo.GetByID(crewID)
	if err != nil {
		return err
	}
	if member == nil {
		return fmt.Errorf("crew member %s: %w", crewID, domain.ErrNotFound)
	}

	return uc.txRunner.RunJobs(ctx, func(
		jobRepo repository.JobRepository,
		activityRepo repository.ActivityRepository,
		_ repository.SequenceRepository,
	) error {
		job, err := jobRepo.GetByIDForUpdate(jobID)
		if err != nil {
			return err
		}
		if job == nil {
			return domain.ErrNotFound
		}
		assigned, err := jobRepo.IsCrewAssigned(jobID, crewID)
		if err != nil {
			return err
		}
		if !assigned {
			return fmt.Errorf("%s is not assigned to %s: %w", member.Name, job.JobNumber, domain.ErrNotFound)
		}
		if err := jobRepo.RemoveCrew(jobID, crewID); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			Type:        entity.ActivityCrewRemoved,
			Description: fmt.Sprintf("%s removed from job %s", member.Name, job.JobNumber),
			JobID:       job.ID,
			UserID:      userID,
			CreatedAt:   time.Now(),
		})
	})
}
