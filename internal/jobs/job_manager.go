package jobs

import (
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/application/session"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionJanitorJob   *SessionJanitorJob
	positionWatchdogJob *PositionWatchdogJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(manager *session.Manager, logger *slog.Logger) *JobManager {
	return &JobManager{
		sessionJanitorJob:   NewSessionJanitorJob(manager, logger),
		positionWatchdogJob: NewPositionWatchdogJob(manager, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionJanitorJob.Start(); err != nil {
		return fmt.Errorf("failed to start session janitor job: %w", err)
	}

	if err := jm.positionWatchdogJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionJanitorJob.Stop()
		return fmt.Errorf("failed to start position watchdog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionJanitorJob.Stop()
	jm.positionWatchdogJob.Stop()
}
