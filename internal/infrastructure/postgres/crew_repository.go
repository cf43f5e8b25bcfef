package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

var _ repository.CrewRepository = (*CrewRepo)(nil)

// CrewRepo implements CrewRepository over PostgreSQL (usable with pool or tx).
type CrewRepo struct {
	q Querier
}

// NewCrewRepository builds the adapter. Pass pool or tx (Querier).
func NewCrewRepository(q Querier) *CrewRepo {
	return &CrewRepo{q: q}
}

// Create persists a new crew member.
func (r *CrewRepo) Create(m *entity.CrewMember) error {
	query := `
		INSERT INTO crew_members (id, name, phone, email, role, rate, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Phone, m.Email, m.Role, m.Rate, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert crew member: %w", err)
	}
	return nil
}

// GetByID fetches a crew member with their assignment count.
func (r *CrewRepo) GetByID(id string) (*entity.CrewMember, error) {
	query := `
		SELECT m.id, m.name, m.phone, m.email, m.role, m.rate, m.active, m.created_at, m.updated_at,
		       (SELECT COUNT(*) FROM job_crew jc WHERE jc.crew_id = m.id)
		FROM crew_members m WHERE m.id = $1`
	var m entity.CrewMember
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Phone, &m.Email, &m.Role, &m.Rate, &m.Active,
		&m.CreatedAt, &m.UpdatedAt, &m.AssignmentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crew member: %w", err)
	}
	return &m, nil
}

// List returns the roster ordered by name.
func (r *CrewRepo) List(activeOnly *bool) ([]*entity.CrewMember, error) {
	query := `
		SELECT m.id, m.name, m.phone, m.email, m.role, m.rate, m.active, m.created_at, m.updated_at,
		       (SELECT COUNT(*) FROM job_crew jc WHERE jc.crew_id = m.id)
		FROM crew_members m`
	args := []any{}
	if activeOnly != nil {
		query += ` WHERE m.active = $1`
		args = append(args, *activeOnly)
	}
	query += ` ORDER BY m.name`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list crew: %w", err)
	}
	defer rows.Close()

	var list []*entity.CrewMember
	for rows.Next() {
		var m entity.CrewMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Role, &m.Rate, &m.Active,
			&m.CreatedAt, &m.UpdatedAt, &m.AssignmentCount); err != nil {
			return nil, fmt.Errorf("scan crew member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update overwrites a crew member's profile.
func (r *CrewRepo) Update(m *entity.CrewMember) error {
	query := `
		UPDATE crew_members
		SET name = $2, phone = $3, email = $4, role = $5, rate = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Phone, m.Email, m.Role, m.Rate, m.Active, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update crew member: %w", err)
	}
	return nil
}

// Deactivate flips active to false. Rows are never removed so historical
// assignments keep resolving.
func (r *CrewRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE crew_members SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate crew member: %w", err)
	}
	return nil
}

// ListAssignments returns the member's most recent jobs.
func (r *CrewRepo) ListAssignments(crewID string, limit int) ([]*entity.Job, error) {
	query := `
		SELECT ` + jobColumns + `, c.name
		FROM job_crew jc
		JOIN jobs j ON j.id = jc.job_id
		JOIN customers c ON c.id = j.customer_id
		WHERE jc.crew_id = $1
		ORDER BY jc.assigned_at DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, crewID, limit)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Job
	for rows.Next() {
		var j entity.Job
		if err := rows.Scan(
			&j.ID, &j.JobNumber, &j.Title, &j.Description, &j.Status, &j.Priority,
			&j.Address, &j.City, &j.State, &j.Zip, &j.ScheduledDate, &j.CompletedDate,
			&j.EstimatedAmount, &j.ActualAmount, &j.Notes, &j.IsWorkOrder, &j.WorkOrderEmail,
			&j.CustomerID, &j.CreatedByID, &j.CreatedAt, &j.UpdatedAt, &j.CustomerName,
		); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &j)
	}
	return list, rows.Err()
}
