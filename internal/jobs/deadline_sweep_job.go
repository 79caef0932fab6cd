package jobs

import (
	"context"
	"log/slog"

	"engage/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeadlineSweepJob periodically cancels orders whose acceptance deadline
// has passed. Reads still resolve expired orders on their own; the sweep
// keeps the stored state converging even when nobody is looking.
type DeadlineSweepJob struct {
	handler commands.SweepExpiredCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeadlineSweepJob creates a job that sweeps expired pending orders.
func NewDeadlineSweepJob(handler commands.SweepExpiredCommandHandler, logger *slog.Logger) *DeadlineSweepJob {
	return &DeadlineSweepJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "deadline_sweep_job"),
	}
}

// Start begins the sweep job, running once a minute.
func (j *DeadlineSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		if err := j.handler.Handle(ctx, commands.NewSweepExpiredCommand()); err != nil {
			j.logger.ErrorContext(ctx, "Deadline sweep job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Deadline sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *DeadlineSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Deadline sweep job stopped")
}
