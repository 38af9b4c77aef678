// Package jobs provides scheduled background tasks for the freight system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the matching service.
//
// # Available Jobs
//
// 1. BackhaulSweepJob - Periodically scans open unpaired jobs and records backhaul pairs
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(buildBackhaulsHandler, schedule, logger)
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
// The sweep schedule is configurable (cron expression with seconds); by
// default it runs every five minutes. Pair building is idempotent per run:
// already paired jobs are skipped, so overlapping runs cannot double-pair.
//
// # Error Handling
//
// - A sweep that creates zero pairs is a normal outcome, not an error
// - Store or scoring failures are logged and retried on the next run
// - Failed job starts will stop any already running jobs
package jobs
