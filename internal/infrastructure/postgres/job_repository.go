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

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implements JobRepository over PostgreSQL (usable with pool or tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository builds the adapter. Pass pool or tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `
	j.id, j.job_number, j.title, j.description, j.status, j.priority,
	j.address, j.city, j.state, j.zip, j.scheduled_date, j.completed_date,
	j.estimated_amount, j.actual_amount, j.notes, j.is_work_order, j.work_order_email,
	j.customer_id, COALESCE(j.created_by_id, ''), j.created_at, j.updated_at`

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	err := row.Scan(
		&j.ID, &j.JobNumber, &j.Title, &j.Description, &j.Status, &j.Priority,
		&j.Address, &j.City, &j.State, &j.Zip, &j.ScheduledDate, &j.CompletedDate,
		&j.EstimatedAmount, &j.ActualAmount, &j.Notes, &j.IsWorkOrder, &j.WorkOrderEmail,
		&j.CustomerID, &j.CreatedByID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create persists a new job. A job number collision maps to ErrConflict so
// the caller can re-allocate and retry.
func (r *JobRepo) Create(j *entity.Job) error {
	query := `
		INSERT INTO jobs (id, job_number, title, description, status, priority,
			address, city, state, zip, scheduled_date, completed_date,
			estimated_amount, actual_amount, notes, is_work_order, work_order_email,
			customer_id, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		j.ID, j.JobNumber, j.Title, j.Description, j.Status, j.Priority,
		j.Address, j.City, j.State, j.Zip, j.ScheduledDate, j.CompletedDate,
		j.EstimatedAmount, j.ActualAmount, j.Notes, j.IsWorkOrder, j.WorkOrderEmail,
		j.CustomerID, nullableID(j.CreatedByID), j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("job number %s taken: %w", j.JobNumber, domain.ErrConflict)
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID fetches a job with its customer name.
func (r *JobRepo) GetByID(id string) (*entity.Job, error) {
	query := `
		SELECT ` + jobColumns + `, c.name,
		       (SELECT COUNT(*) FROM invoices i WHERE i.job_id = j.id)
		FROM jobs j JOIN customers c ON c.id = j.customer_id
		WHERE j.id = $1`
	var j entity.Job
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&j.ID, &j.JobNumber, &j.Title, &j.Description, &j.Status, &j.Priority,
		&j.Address, &j.City, &j.State, &j.Zip, &j.ScheduledDate, &j.CompletedDate,
		&j.EstimatedAmount, &j.ActualAmount, &j.Notes, &j.IsWorkOrder, &j.WorkOrderEmail,
		&j.CustomerID, &j.CreatedByID, &j.CreatedAt, &j.UpdatedAt,
		&j.CustomerName, &j.InvoiceCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &j, nil
}

// GetByIDForUpdate locks the job row for the rest of the transaction.
func (r *JobRepo) GetByIDForUpdate(id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = $1 FOR UPDATE`
	j, err := scanJob(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock job: %w", err)
	}
	return j, nil
}

// List returns a filtered page plus the unpaged total, newest first.
func (r *JobRepo) List(f repository.JobFilter) ([]*entity.Job, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	n := 0
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND (j.job_number ILIKE $%d OR j.title ILIKE $%d OR j.description ILIKE $%d)", n, n, n)
		args = append(args, "%"+f.Search+"%")
	}
	if f.Status != "" {
		n++
		where += fmt.Sprintf(" AND j.status = $%d", n)
		args = append(args, f.Status)
	}
	if f.Priority != "" {
		n++
		where += fmt.Sprintf(" AND j.priority = $%d", n)
		args = append(args, f.Priority)
	}
	if f.CustomerID != "" {
		n++
		where += fmt.Sprintf(" AND j.customer_id = $%d", n)
		args = append(args, f.CustomerID)
	}
	if f.IsWorkOrder != nil {
		n++
		where += fmt.Sprintf(" AND j.is_work_order = $%d", n)
		args = append(args, *f.IsWorkOrder)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM jobs j"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `, c.name,
		       (SELECT COUNT(*) FROM invoices i WHERE i.job_id = j.id)
		FROM jobs j JOIN customers c ON c.id = j.customer_id` + where +
		fmt.Sprintf(" ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var list []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(
			&j.ID, &j.JobNumber, &j.Title, &j.Description, &j.Status, &j.Priority,
			&j.Address, &j.City, &j.State, &j.Zip, &j.ScheduledDate, &j.CompletedDate,
			&j.EstimatedAmount, &j.ActualAmount, &j.Notes, &j.IsWorkOrder, &j.WorkOrderEmail,
			&j.CustomerID, &j.CreatedByID, &j.CreatedAt, &j.UpdatedAt,
			&j.CustomerName, &j.InvoiceCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, &j)
	}
	return list, total, rows.Err()
}

// Update overwrites a job's mutable columns.
func (r *JobRepo) Update(j *entity.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, status = $4, priority = $5,
		    address = $6, city = $7, state = $8, zip = $9,
		    scheduled_date = $10, completed_date = $11,
		    estimated_amount = $12, actual_amount = $13, notes = $14,
		    is_work_order = $15, work_order_email = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		j.ID, j.Title, j.Description, j.Status, j.Priority,
		j.Address, j.City, j.State, j.Zip,
		j.ScheduledDate, j.CompletedDate,
		j.EstimatedAmount, j.ActualAmount, j.Notes,
		j.IsWorkOrder, j.WorkOrderEmail, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete removes a job; line items and crew links cascade.
func (r *JobRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidState
		}
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// CountInvoices returns the number of invoices referencing the job.
func (r *JobRepo) CountInvoices(jobID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE job_id = $1`, jobID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count job invoices: %w", err)
	}
	return count, nil
}

// ReplaceLineItems deletes and reinserts the job's line items.
func (r *JobRepo) ReplaceLineItems(jobID string, items []*entity.LineItem) error {
	return replaceLineItems(r.q, "job_id", jobID, items)
}

// ListLineItems returns the job's line items in sort order.
func (r *JobRepo) ListLineItems(jobID string) ([]*entity.LineItem, error) {
	return listLineItems(r.q, "job_id", jobID)
}

// AssignCrew links a crew member to the job.
func (r *JobRepo) AssignCrew(jobID, crewID string) error {
	query := `INSERT INTO job_crew (job_id, crew_id, assigned_at) VALUES ($1, $2, now())`
	_, err := r.q.Exec(context.Background(), query, jobID, crewID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("assign crew: %w", err)
	}
	return nil
}

// RemoveCrew unlinks a crew member from the job.
func (r *JobRepo) RemoveCrew(jobID, crewID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM job_crew WHERE job_id = $1 AND crew_id = $2`, jobID, crewID)
	if err != nil {
		return fmt.Errorf("remove crew: %w", err)
	}
	return nil
}

// ListCrew returns the members assigned to the job.
func (r *JobRepo) ListCrew(jobID string) ([]*entity.CrewMember, error) {
	query := `
		SELECT m.id, m.name, m.phone, m.email, m.role, m.rate, m.active, m.created_at, m.updated_at
		FROM job_crew jc JOIN crew_members m ON m.id = jc.crew_id
		WHERE jc.job_id = $1
		ORDER BY jc.assigned_at`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job crew: %w", err)
	}
	defer rows.Close()

	var list []*entity.CrewMember
	for rows.Next() {
		var m entity.CrewMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Role, &m.Rate,
			&m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan crew member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// IsCrewAssigned reports whether the member is already on the job.
func (r *JobRepo) IsCrewAssigned(jobID, crewID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM job_crew WHERE job_id = $1 AND crew_id = $2)`,
		jobID, crewID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check crew assignment: %w", err)
	}
	return exists, nil
}

// nullableID maps an empty string to NULL for optional foreign keys.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
