package repository

import "github.com/intecelectric/crm-api/internal/domain/entity"

// CrewRepository persists crew members. Members are soft-deleted: Deactivate
// flips Active to false, rows are never removed.
type CrewRepository interface {
	Create(m *entity.CrewMember) error
	GetByID(id string) (*entity.CrewMember, error)
	List(activeOnly *bool) ([]*entity.CrewMember, error)
	Update(m *entity.CrewMember) error
	Deactivate(id string) error
	ListAssignments(crewID string, limit int) ([]*entity.Job, error)
}
