package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository over PostgreSQL (usable with pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter. Pass pool or tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persists a new customer.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, company, address, city, state, zip, notes, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.City, c.State, c.Zip,
		c.Notes, c.Type, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID fetches a customer by ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `
		SELECT id, name, email, phone, company, address, city, state, zip, notes, type, created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address, &c.City, &c.State, &c.Zip,
		&c.Notes, &c.Type, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List returns a filtered page plus the unpaged total.
func (r *CustomerRepo) List(f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	n := 0
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND (c.name ILIKE $%d OR c.email ILIKE $%d OR c.company ILIKE $%d OR c.phone ILIKE $%d)", n, n, n, n)
		args = append(args, "%"+f.Search+"%")
	}
	if f.Type != "" {
		n++
		where += fmt.Sprintf(" AND c.type = $%d", n)
		args = append(args, f.Type)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM customers c"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := `
		SELECT c.id, c.name, c.email, c.phone, c.company, c.address, c.city, c.state, c.zip,
		       c.notes, c.type, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM jobs j WHERE j.customer_id = c.id),
		       (SELECT COUNT(*) FROM invoices i WHERE i.customer_id = c.id)
		FROM customers c` + where +
		fmt.Sprintf(" ORDER BY c.name LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address, &c.City, &c.State, &c.Zip,
			&c.Notes, &c.Type, &c.CreatedAt, &c.UpdatedAt, &c.JobCount, &c.InvoiceCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// Update overwrites a customer's profile columns.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, company = $5, address = $6, city = $7,
		    state = $8, zip = $9, notes = $10, type = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.City, c.State, c.Zip,
		c.Notes, c.Type, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete removes a customer by ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidState
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// CountOwned returns the number of jobs and invoices referencing a customer.
func (r *CustomerRepo) CountOwned(id string) (jobs, invoices int, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM jobs WHERE customer_id = $1),
			(SELECT COUNT(*) FROM invoices WHERE customer_id = $1)`
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&jobs, &invoices); err != nil {
		return 0, 0, fmt.Errorf("count customer ownership: %w", err)
	}
	return jobs, invoices, nil
}
