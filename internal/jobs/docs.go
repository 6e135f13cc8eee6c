// Package jobs provides scheduled background tasks for the tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping around tracking sessions.
//
// # Available Jobs
//
// 1. SessionJanitorJob - Runs every 30 seconds to close sessions whose order reached a terminal status
// 2. PositionWatchdogJob - Runs every 15 seconds to flag in-transit orders with stale or missing driver positions
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sessionManager, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The janitor treats "nothing to close" as the normal case and stays quiet
// - The watchdog only warns; acting on a quiet driver is a support decision
// - Failed job starts will stop any already running jobs
package jobs
