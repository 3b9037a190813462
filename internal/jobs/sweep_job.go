package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep every 30 seconds.
const DefaultSweepSchedule = "*/30 * * * * *"

// SweepRunner is satisfied by commands.SweepPendingOrdersCommandHandler.
type SweepRunner interface {
	Handle(ctx context.Context, command commands.SweepPendingOrdersCommand) (commands.SweepResult, error)
}

// PendingOrderSweepJob periodically retries assignment for orders still waiting for a partner.
// A run that is still in progress when the next tick fires causes that tick to be skipped.
type PendingOrderSweepJob struct {
	handler  SweepRunner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewPendingOrderSweepJob creates the job. An empty schedule falls back to DefaultSweepSchedule.
func NewPendingOrderSweepJob(handler SweepRunner, schedule string, logger *slog.Logger) *PendingOrderSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	return &PendingOrderSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pending_order_sweep_job"),
	}
}

// Start registers the sweep on its schedule and starts the scheduler.
func (j *PendingOrderSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *PendingOrderSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pending order sweep job stopped")
}

func (j *PendingOrderSweepJob) run() {
	if !j.tryAcquire() {
		j.logger.WarnContext(context.Background(), "Previous sweep still running, skipping tick")
		return
	}
	defer j.release()

	ctx := context.Background()
	result, err := j.handler.Handle(ctx, commands.NewSweepPendingOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order sweep failed", "error", err)
		return
	}

	if result.Processed > 0 {
		j.logger.InfoContext(ctx, "Pending order sweep finished", "processed", result.Processed)
	}
}

func (j *PendingOrderSweepJob) tryAcquire() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.running {
		return false
	}
	j.running = true
	return true
}

func (j *PendingOrderSweepJob) release() {
	j.mu.Lock()
	j.running = false
	j.mu.Unlock()
}
