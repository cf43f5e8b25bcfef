package settings

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// UseCase drives the company configuration store.
type UseCase struct {
	settingRepo repository.SettingRepository
}

// NewUseCase wires the use case.
func NewUseCase(settingRepo repository.SettingRepository) *UseCase {
	return &UseCase{settingRepo: settingRepo}
}

// GetAll returns every setting as a flat map.
func (uc *UseCase) GetAll(ctx context.Context) (map[string]string, error) {
	return uc.settingRepo.GetAll()
}

// Update upserts a batch of settings. Values that must parse, parse first;
// nothing is written when any entry is invalid.
func (uc *UseCase) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	for key, value := range values {
		if key == "" {
			return nil, fmt.Errorf("empty setting key: %w", domain.ErrInvalidInput)
		}
		if key == entity.SettingDefaultTaxRate && value != "" {
			rate, err := decimal.NewFromString(value)
			if err != nil || rate.IsNegative() {
				return nil, fmt.Errorf("default_tax_rate must be a non-negative number: %w", domain.ErrInvalidInput)
			}
		}
	}
	for key, value := range values {
		if err := uc.settingRepo.Upsert(key, value); err != nil {
			return nil, err
		}
	}
	return uc.settingRepo.GetAll()
}
