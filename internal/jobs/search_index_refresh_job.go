package jobs

import (
	"context"
	"log/slog"

	"engage/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SearchIndexRefreshJob rebuilds the denormalized specialist search index.
// Writes update the index inline; the refresh repairs rows that drifted,
// for example after a schedule window opened or closed.
type SearchIndexRefreshJob struct {
	handler commands.RefreshSearchIndexCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSearchIndexRefreshJob creates a job that refreshes the search index.
func NewSearchIndexRefreshJob(handler commands.RefreshSearchIndexCommandHandler, logger *slog.Logger) *SearchIndexRefreshJob {
	return &SearchIndexRefreshJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "search_index_refresh_job"),
	}
}

// Start begins the refresh job, running every five minutes.
func (j *SearchIndexRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()

		if err := j.handler.Handle(ctx, commands.NewRefreshSearchIndexCommand()); err != nil {
			j.logger.ErrorContext(ctx, "Search index refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Search index refresh job started (running every 5 minutes)")
	return nil
}

// Stop stops the refresh job.
func (j *SearchIndexRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Search index refresh job stopped")
}
