package activity

import (
	"context"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// UseCase exposes read access to the audit trail. Records are written by the
// job and billing use cases inside their own transactions, never here.
type UseCase struct {
	activityRepo repository.ActivityRepository
}

// NewUseCase wires the use case.
func NewUseCase(activityRepo repository.ActivityRepository) *UseCase {
	return &UseCase{activityRepo: activityRepo}
}

// List returns a filtered page of activities, newest first.
func (uc *UseCase) List(ctx context.Context, f repository.ActivityFilter) ([]*entity.Activity, int, error) {
	return uc.activityRepo.List(f)
}
