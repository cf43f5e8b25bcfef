package crew

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/intecelectric/crm-api/internal/application/dto"
	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// UseCase drives the crew roster.
type UseCase struct {
	crewRepo repository.CrewRepository
}

// NewUseCase wires the use case.
func NewUseCase(crewRepo repository.CrewRepository) *UseCase {
	return &UseCase{crewRepo: crewRepo}
}

// Create adds a crew member to the roster.
func (uc *UseCase) Create(ctx context.Context, in dto.CrewMemberRequest) (*entity.CrewMember, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name required: %w", domain.ErrInvalidInput)
	}
	rate := decimal.Zero
	if in.Rate != nil {
		if in.Rate.IsNegative() {
			return nil, fmt.Errorf("rate cannot be negative: %w", domain.ErrInvalidInput)
		}
		rate = *in.Rate
	}

	now := time.Now()
	m := &entity.CrewMember{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Role:      in.Role,
		Rate:      rate,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.crewRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get loads one crew member with recent assignments.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.CrewMember, []*entity.Job, error) {
	m, err := uc.crewRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, domain.ErrNotFound
	}
	assignments, err := uc.crewRepo.ListAssignments(id, 20)
	if err != nil {
		return nil, nil, err
	}
	return m, assignments, nil
}

// List returns the roster, optionally filtered to active members.
func (uc *UseCase) List(ctx context.Context, activeOnly *bool) ([]*entity.CrewMember, error) {
	return uc.crewRepo.List(activeOnly)
}

// Update overwrites a crew member's profile.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CrewMemberRequest) (*entity.CrewMember, error) {
	m, err := uc.crewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name required: %w", domain.ErrInvalidInput)
	}

	m.Name = in.Name
	m.Phone = in.Phone
	m.Email = in.Email
	m.Role = in.Role
	if in.Rate != nil {
		if in.Rate.IsNegative() {
			return nil, fmt.Errorf("rate cannot be negative: %w", domain.ErrInvalidInput)
		}
		m.Rate = *in.Rate
	}
	if in.Active != nil {
		m.Active = *in.Active
	}
	m.UpdatedAt = time.Now()

	if err := uc.crewRepo.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Deactivate soft-deletes a crew member. Past assignments keep resolving.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	m, err := uc.crewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.crewRepo.Deactivate(id)
}
