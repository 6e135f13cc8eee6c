package ports

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/order"
)

// ErrDispatchFailed is the sentinel for notification delivery failures.
// Dispatch is best-effort: a failure is logged and never rolls back the
// already-applied status transition.
var ErrDispatchFailed = errors.New("notification dispatch failed")

// Notifier is the contract with the external notification capability
// (SMS/push transport is out of scope). Fire-and-forget from the core's
// perspective.
type Notifier interface {
	// Notify delivers the rendered message to the intent's contact.
	// Failures wrap ErrDispatchFailed.
	Notify(ctx context.Context, intent order.NotificationIntent) error
}
