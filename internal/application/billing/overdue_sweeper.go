package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
	"github.com/intecelectric/crm-api/internal/domain/status"
	"github.com/intecelectric/crm-api/pkg/logger"
)

// SweeperConfig tunes the overdue sweep.
type SweeperConfig struct {
	Interval time.Duration // wall-clock period between runs
	Timeout  time.Duration // per-run execution budget
	Batch    int           // max invoices per run
}

func (c SweeperConfig) withDefaults() SweeperConfig {
	if c.Interval <= 0 {
		c.Interval = 24 * time.Hour
	}
	if c.Timeout <= 0 {
		c.Timeout = time.Minute
	}
	if c.Batch <= 0 {
		c.Batch = 500
	}
	return c
}

// OverdueSweeper is the recurring task that reclassifies past-due invoices.
// Candidates are invoices in SENT or PARTIAL with a due date strictly before
// now; already-OVERDUE invoices never match, so re-running is a no-op. Rows
// are locked with SKIP LOCKED so the sweep never blocks a user mutation in
// flight; a skipped invoice is picked up on the next run.
type OverdueSweeper struct {
	txRunner TxRunner
	log      *logger.Logger
	cfg      SweeperConfig
}

// NewOverdueSweeper wires the sweeper.
func NewOverdueSweeper(txRunner TxRunner, log *logger.Logger, cfg SweeperConfig) *OverdueSweeper {
	return &OverdueSweeper{txRunner: txRunner, log: log, cfg: cfg.withDefaults()}
}

// RunForever sweeps once immediately, then on every tick until ctx is done.
// A failed run is logged and retried on the next tick.
func (s *OverdueSweeper) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if n, err := s.RunOnce(ctx); err != nil {
			s.log.Warn().Err(err).Msg("overdue sweep failed, will retry on next tick")
		} else if n > 0 {
			s.log.Info().Int("count", n).Msg("invoices marked overdue")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single sweep under the configured timeout and returns
// the number of invoices transitioned.
func (s *OverdueSweeper) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	marked := 0
	err := s.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		activityRepo repository.ActivityRepository,
		_ repository.SequenceRepository,
	) error {
		candidates, err := invoiceRepo.ListOverdueCandidates(time.Now(), s.cfg.Batch)
		if err != nil {
			return err
		}
		for _, inv := range candidates {
			changed, err := status.Invoices().Transition(inv.Status, entity.InvoiceStatusOverdue)
			if err != nil || !changed {
				continue // predicate and table disagree; leave it alone
			}
			from := inv.Status
			inv.Status = entity.InvoiceStatusOverdue
			inv.UpdatedAt = time.Now()
			if err := invoiceRepo.Update(inv); err != nil {
				return err
			}
			// One audit record per invoice, attributed to the system (no user).
			if err := activityRepo.Create(&entity.Activity{
				ID:          uuid.New().String(),
				Type:        entity.ActivityStatusChange,
				Description: "Invoice " + inv.InvoiceNumber + " status changed to OVERDUE",
				Metadata:    map[string]string{"from": from, "to": entity.InvoiceStatusOverdue},
				InvoiceID:   inv.ID,
				JobID:       inv.JobID,
				CreatedAt:   time.Now(),
			}); err != nil {
				return err
			}
			marked++
		}
		return nil
	})
	return marked, err
}
