package repository

import "github.com/intecelectric/crm-api/internal/domain/entity"

// JobFilter narrows job listings.
type JobFilter struct {
	Search      string // matches job number, title, description
	Status      string
	Priority    string
	CustomerID  string
	IsWorkOrder *bool
	Limit       int
	Offset      int
}

// JobRepository persists jobs, their line items and crew assignments.
// Get methods return (nil, nil) when the row does not exist.
type JobRepository interface {
	Create(j *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	// GetByIDForUpdate locks the job row for the rest of the transaction.
	GetByIDForUpdate(id string) (*entity.Job, error)
	List(f JobFilter) ([]*entity.Job, int, error)
	Update(j *entity.Job) error
	Delete(id string) error
	CountInvoices(jobID string) (int, error)

	// Line items are owned by the job: replaced wholesale, never merged.
	ReplaceLineItems(jobID string, items []*entity.LineItem) error
	ListLineItems(jobID string) ([]*entity.LineItem, error)

	AssignCrew(jobID, crewID string) error
	RemoveCrew(jobID, crewID string) error
	ListCrew(jobID string) ([]*entity.CrewMember, error)
	IsCrewAssigned(jobID, crewID string) (bool, error)
}
