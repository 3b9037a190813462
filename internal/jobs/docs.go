// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// PendingOrderSweepJob runs the pending-order sweep on a configurable schedule
// (default every 30 seconds). Each run retries assignment for every order that
// has no partner yet.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, cfg.SweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Per-order outcomes are handled inside the sweep. The job only logs failures of
// the sweep as a whole, and skips a tick while the previous run is still going.
package jobs
