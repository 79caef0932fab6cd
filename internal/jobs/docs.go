// Package jobs provides scheduled background tasks for the engagement
// platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. DeadlineSweepJob - Runs every minute to auto-cancel pending orders whose acceptance deadline passed
// 2. SearchIndexRefreshJob - Runs every 5 minutes to rebuild the denormalized specialist search index
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(sweepExpiredHandler, refreshSearchIndexHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep runs on "* * * * *" (every minute). Expired orders are also
// resolved lazily when a client reads them, so the sweep only bounds how
// long an expired order stays PENDING in the store.
//
// The index refresh runs on "*/5 * * * *" (every 5 minutes). Index rows
// are updated inline on availability and profile writes; the refresh
// repairs rows driven by the clock, such as schedule windows opening.
//
// # Error Handling
//
// - Both jobs log failures and retry on the next tick
// - Failed job starts will stop any already running jobs
package jobs
