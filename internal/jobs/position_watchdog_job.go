package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/session"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// staleAfter is how old the last driver position may get on an in-transit
// order before the watchdog flags it.
const staleAfter = 2 * time.Minute

// PositionWatchdogJob flags in-transit orders whose driver has gone quiet.
// Runs every 15 seconds; a stale position usually means a dead device or a
// broken transport, and support wants to know before the customer does.
type PositionWatchdogJob struct {
	manager *session.Manager
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPositionWatchdogJob creates a watchdog over the session manager.
func NewPositionWatchdogJob(manager *session.Manager, logger *slog.Logger) *PositionWatchdogJob {
	return &PositionWatchdogJob{
		manager: manager,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "position_watchdog_job"),
	}
}

// Start begins the watchdog job to run every 15 seconds.
func (j *PositionWatchdogJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		j.inspect(time.Now())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Position watchdog job started (running every 15 seconds)")
	return nil
}

// Stop stops the watchdog job.
func (j *PositionWatchdogJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Position watchdog job stopped")
}

func (j *PositionWatchdogJob) inspect(now time.Time) {
	for _, snapshot := range j.manager.Snapshots() {
		if !inTransit(snapshot.Status) {
			continue
		}

		if !snapshot.HasLocation {
			j.logger.Warn("in-transit order has no position reports",
				"order_id", snapshot.OrderID.String(), "status", snapshot.Status.String())
			continue
		}

		if age := now.Sub(snapshot.Location.RecordedAt()); age > staleAfter {
			j.logger.Warn("driver position is stale",
				"order_id", snapshot.OrderID.String(),
				"status", snapshot.Status.String(),
				"age", age.Round(time.Second).String())
		}
	}
}

func inTransit(status order.Status) bool {
	return status == order.PickedUp || status == order.OnTheWay
}
