package repository

import "github.com/intecelectric/crm-api/internal/domain/entity"

// CustomerFilter narrows customer listings.
type CustomerFilter struct {
	Search string // matches name, email, company, phone
	Type   string
	Limit  int
	Offset int
}

// CustomerRepository persists customers. Get methods return (nil, nil) when
// the row does not exist.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(f CustomerFilter) ([]*entity.Customer, int, error)
	Update(c *entity.Customer) error
	Delete(id string) error
	// CountOwned returns the number of jobs and invoices owned by a customer;
	// a customer is deletable only when both are zero.
	CountOwned(id string) (jobs, invoices int, err error)
}
