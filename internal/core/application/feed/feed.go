// Package feed implements the position feed: the single place inbound driver
// coordinate events are normalized into per-order LiveLocation values and
// fanned out to the subscribed session.
//
// The feed owns the out-of-order delivery guard. An update whose timestamp
// does not supersede the one already accepted for that order is dropped
// silently; updates for orders with no active subscriber are dropped too.
// Each accepted update triggers exactly one subscriber callback.
package feed

import (
	"fmt"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/pkg/errs"
)

// Handler receives accepted position updates for one order. Handlers are
// invoked in admission order and must not block; sessions enqueue into a
// buffered mailbox and return.
type Handler func(location tracking.LiveLocation)

// Feed fans driver position events out to per-order subscribers.
// Safe for concurrent use.
type Feed struct {
	logger *slog.Logger

	mu   sync.Mutex
	subs map[kernel.UUID]*subscription
}

type subscription struct {
	handler Handler
	last    tracking.LiveLocation
	hasLast bool
}

// New creates an empty feed.
func New(logger *slog.Logger) *Feed {
	return &Feed{
		logger: logger.With("component", "position_feed"),
		subs:   make(map[kernel.UUID]*subscription),
	}
}

// Subscribe registers the handler for one order's position updates and
// returns an unsubscribe function. At most one subscriber per order; the
// session orchestrator is the only intended subscriber.
//
// The unsubscribe function is idempotent and only removes the subscription
// it created, so a stale unsubscribe cannot tear down a newer session.
func (f *Feed) Subscribe(orderID kernel.UUID, handler Handler) (func(), error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, errs.NewValueIsRequiredError("handler")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.subs[orderID]; ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("order %s already has a position subscriber", orderID))
	}

	sub := &subscription{handler: handler}
	f.subs[orderID] = sub

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if current, ok := f.subs[orderID]; ok && current == sub {
			delete(f.subs, orderID)
		}
	}, nil
}

// Publish offers a position update for an order. Updates for orders with no
// subscriber and updates rejected by the monotonic-timestamp guard are
// dropped without error. An accepted update replaces the held value and is
// delivered to the subscriber exactly once.
//
// The handler runs under the feed lock to preserve admission order; this is
// why handlers must not block.
func (f *Feed) Publish(orderID kernel.UUID, location tracking.LiveLocation) {
	if err := orderID.Validate(); err != nil {
		f.logger.Warn("Dropping position update with invalid order id", "error", err)
		return
	}
	if err := location.Validate(); err != nil {
		f.logger.Warn("Dropping unconstructed position update", "order_id", orderID.String(), "error", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	sub, ok := f.subs[orderID]
	if !ok {
		return
	}

	if sub.hasLast && !location.Supersedes(sub.last) {
		f.logger.Debug("Dropping stale position update",
			"order_id", orderID.String(),
			"held", sub.last.RecordedAt(),
			"received", location.RecordedAt())
		return
	}

	sub.last = location
	sub.hasLast = true
	sub.handler(location)
}
