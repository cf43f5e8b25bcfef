package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrewMember is a field technician. Once assigned to any job a member is
// deactivated rather than hard-deleted, so historical assignments keep
// resolving.
type CrewMember struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Role      string
	Rate      decimal.Decimal // hourly
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated on reads.
	AssignmentCount int
}

// JobCrew links a crew member to a job.
type JobCrew struct {
	JobID      string
	CrewID     string
	AssignedAt time.Time

	// Populated on reads.
	Crew *CrewMember
}
