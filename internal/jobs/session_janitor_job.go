package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/session"

	"github.com/robfig/cron/v3"
)

// SessionJanitorJob closes tracking sessions whose order reached a terminal
// status. Runs every 30 seconds so a delivered or cancelled order never keeps
// its loop and feed subscription around for long.
type SessionJanitorJob struct {
	manager *session.Manager
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSessionJanitorJob creates a janitor over the session manager.
func NewSessionJanitorJob(manager *session.Manager, logger *slog.Logger) *SessionJanitorJob {
	return &SessionJanitorJob{
		manager: manager,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_janitor_job"),
	}
}

// Start begins the janitor job to run every 30 seconds.
func (j *SessionJanitorJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		if closed := j.manager.CloseFinished(); closed > 0 {
			j.logger.InfoContext(context.Background(), "Closed finished tracking sessions", "count", closed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session janitor job started (running every 30 seconds)")
	return nil
}

// Stop stops the janitor job.
func (j *SessionJanitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session janitor job stopped")
}
