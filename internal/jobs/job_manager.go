package jobs

import (
	"fmt"
	"log/slog"

	"engage/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deadlineSweepJob      *DeadlineSweepJob
	searchIndexRefreshJob *SearchIndexRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	sweepExpiredHandler commands.SweepExpiredCommandHandler,
	refreshSearchIndexHandler commands.RefreshSearchIndexCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deadlineSweepJob:      NewDeadlineSweepJob(sweepExpiredHandler, logger),
		searchIndexRefreshJob: NewSearchIndexRefreshJob(refreshSearchIndexHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deadlineSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start deadline sweep job: %w", err)
	}

	if err := jm.searchIndexRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.deadlineSweepJob.Stop()
		return fmt.Errorf("failed to start search index refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deadlineSweepJob.Stop()
	jm.searchIndexRefreshJob.Stop()
}
