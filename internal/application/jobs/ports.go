package jobs

import (
	"context"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// TxRunner runs a callback inside one database transaction with repositories
// bound to it, so job numbering, line items, crew links and audit records
// commit or roll back as a single unit.
type TxRunner interface {
	RunJobs(ctx context.Context, fn func(
		jobRepo repository.JobRepository,
		activityRepo repository.ActivityRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// WorkOrderNotifier alerts the configured company inbox when a job arrives
// flagged as an external work order. Failures are logged by the caller and
// never fail the job mutation.
type WorkOrderNotifier interface {
	SendWorkOrderNotification(job *entity.Job, settings map[string]string) (sent bool, err error)
}
