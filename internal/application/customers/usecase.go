package customers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/intecelectric/crm-api/internal/application/dto"
	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// UseCase drives customer CRUD.
type UseCase struct {
	customerRepo repository.CustomerRepository
}

// NewUseCase wires the use case.
func NewUseCase(customerRepo repository.CustomerRepository) *UseCase {
	return &UseCase{customerRepo: customerRepo}
}

// Create persists a new customer.
func (uc *UseCase) Create(ctx context.Context, in dto.CustomerRequest) (*entity.Customer, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name required: %w", domain.ErrInvalidInput)
	}
	typ := in.Type
	if typ == "" {
		typ = entity.CustomerResidential
	}
	if !entity.ValidCustomerType(typ) {
		return nil, fmt.Errorf("unknown customer type %q: %w", typ, domain.ErrInvalidInput)
	}

	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		Zip:       in.Zip,
		Notes:     in.Notes,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get loads one customer with its ownership counts.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.JobCount, c.InvoiceCount, err = uc.customerRepo.CountOwned(id); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a filtered page of customers.
func (uc *UseCase) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	return uc.customerRepo.List(f)
}

// Update overwrites a customer's profile fields.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*entity.Customer, error) {
	c, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name required: %w", domain.ErrInvalidInput)
	}
	if in.Type != "" && !entity.ValidCustomerType(in.Type) {
		return nil, fmt.Errorf("unknown customer type %q: %w", in.Type, domain.ErrInvalidInput)
	}

	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Company = in.Company
	c.Address = in.Address
	c.City = in.City
	c.State = in.State
	c.Zip = in.Zip
	c.Notes = in.Notes
	if in.Type != "" {
		c.Type = in.Type
	}
	c.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a customer; blocked while it still owns jobs or invoices.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	jobs, invoices, err := uc.customerRepo.CountOwned(id)
	if err != nil {
		return err
	}
	if jobs > 0 || invoices > 0 {
		return fmt.Errorf("customer %s owns %d job(s) and %d invoice(s): %w",
			c.Name, jobs, invoices, domain.ErrInvalidState)
	}
	return uc.customerRepo.Delete(id)
}
