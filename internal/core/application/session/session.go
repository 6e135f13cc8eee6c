// Package session implements the tracking session orchestrator. One Session
// exists per order being tracked; it serializes status transitions and
// position admission on a single loop so callers never observe interleaved
// updates for the same order.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fooddelivery/internal/core/application/routing"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/ports"
)

// ErrSessionClosed is returned when an operation reaches a session that has
// already been torn down.
var ErrSessionClosed = errors.New("tracking session is closed")

// defaultPersistTimeout bounds the status write to the order backend so a
// slow store cannot stall the session loop indefinitely.
const defaultPersistTimeout = 5 * time.Second

// notifyTimeout bounds the best-effort notification dispatch.
const notifyTimeout = 5 * time.Second

// watchBuffer is the per-watcher channel capacity. A watcher that falls this
// far behind misses intermediate snapshots, never the session loop.
const watchBuffer = 8

// Snapshot is the session's current view of an order: its status, the last
// admitted driver position, and the route in effect.
type Snapshot struct {
	OrderID     kernel.UUID
	Status      order.Status
	DriverID    *kernel.UUID
	Location    tracking.LiveLocation
	HasLocation bool
	Route       tracking.Route
	HasRoute    bool
}

// Session orchestrates one order's lifecycle and live tracking.
//
// All mutations run on a single loop goroutine. Transitions are submitted as
// closures and answered synchronously; position updates go through a
// one-slot mailbox where a newer report replaces an unconsumed older one, so
// a slow persist never backs up position intake. Route recomputation runs on
// its own worker so a slow routing call cannot block the loop either.
type Session struct {
	orderID    kernel.UUID
	restaurant kernel.GeoPoint

	backend  ports.OrderBackend
	notifier ports.Notifier
	composer *routing.Composer
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	cmds      chan func()
	locs      chan tracking.LiveLocation
	recompute chan struct{}

	// unsubscribe detaches the session from the position feed. Set by the
	// manager right after construction.
	unsubscribe func()

	mu          sync.RWMutex
	ord         *order.Order
	location    tracking.LiveLocation
	hasLocation bool

	watchMu  sync.Mutex
	watchers []chan Snapshot
	closed   bool

	closeOnce sync.Once
}

func newSession(
	ord *order.Order,
	restaurant kernel.GeoPoint,
	backend ports.OrderBackend,
	notifier ports.Notifier,
	composer *routing.Composer,
	logger *slog.Logger,
) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		orderID:    ord.ID(),
		restaurant: restaurant,
		backend:    backend,
		notifier:   notifier,
		composer:   composer,
		logger:     logger.With("component", "session", "order_id", ord.ID().String()),
		ctx:        ctx,
		cancel:     cancel,
		cmds:       make(chan func()),
		locs:       make(chan tracking.LiveLocation, 1),
		recompute:  make(chan struct{}, 1),
		ord:        ord,
	}

	s.wg.Add(2)
	go s.loop()
	go s.recomputeWorker()

	return s
}

// OrderID returns the order this session tracks.
func (s *Session) OrderID() kernel.UUID {
	return s.orderID
}

// SubmitTransition runs the command through the state machine and, if legal,
// persists the new status, notifies the customer, and pushes the updated
// snapshot to watchers. Returns the snapshot now in effect.
//
// An illegal transition returns an error wrapping order.ErrIllegalTransition
// and changes nothing. A persist failure returns the backend error; the
// session keeps its previous state so the caller can retry.
func (s *Session) SubmitTransition(ctx context.Context, cmd commands.SubmitTransitionCommand) (Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return Snapshot{}, err
	}

	type result struct {
		snapshot Snapshot
		err      error
	}
	reply := make(chan result, 1)

	task := func() {
		snapshot, err := s.applyTransition(ctx, cmd)
		reply <- result{snapshot: snapshot, err: err}
	}

	select {
	case s.cmds <- task:
	case <-s.ctx.Done():
		return Snapshot{}, ErrSessionClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	select {
	case res := <-reply:
		return res.snapshot, res.err
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// OnLocationUpdate offers a driver position report to the session. Never
// blocks: if the loop has not consumed the previous report yet, the newer
// one replaces it. The feed calls this from its delivery path.
func (s *Session) OnLocationUpdate(location tracking.LiveLocation) {
	for {
		select {
		case s.locs <- location:
			return
		default:
		}
		select {
		case <-s.locs:
		default:
		}
	}
}

// Snapshot returns the session's current view of the order.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		OrderID:     s.orderID,
		Status:      s.ord.Status(),
		DriverID:    s.ord.Driver(),
		Location:    s.location,
		HasLocation: s.hasLocation,
	}
	snapshot.Route, snapshot.HasRoute = s.composer.Route()

	return snapshot
}

// Watch returns a channel that receives a snapshot after every successful
// transition. The channel is closed when the session closes. A watcher that
// stops reading misses snapshots instead of blocking the session.
func (s *Session) Watch() <-chan Snapshot {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	ch := make(chan Snapshot, watchBuffer)
	if s.closed {
		close(ch)
		return ch
	}

	s.watchers = append(s.watchers, ch)
	return ch
}

// Close tears the session down: detaches it from the position feed, stops
// the loop and the recompute worker, and closes all watcher channels.
// Idempotent. An in-flight route recompute response is discarded.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		s.cancel()
		s.wg.Wait()

		s.watchMu.Lock()
		s.closed = true
		for _, ch := range s.watchers {
			close(ch)
		}
		s.watchers = nil
		s.watchMu.Unlock()
	})
}

func (s *Session) loop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case task := <-s.cmds:
			task()
		case location := <-s.locs:
			s.admitLocation(location)
		}
	}
}

// applyTransition runs on the session loop.
func (s *Session) applyTransition(ctx context.Context, cmd commands.SubmitTransitionCommand) (Snapshot, error) {
	current := s.currentOrder()

	if _, err := current.Status().TransitionTo(cmd.TargetStatus(), cmd.ActorRole()); err != nil {
		return s.Snapshot(), err
	}

	persistCtx, cancel := context.WithTimeout(ctx, defaultPersistTimeout)
	defer cancel()

	updated, err := s.backend.SetOrderStatus(persistCtx, s.orderID, cmd.TargetStatus(), cmd.ActorRole())
	if err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	s.ord = updated
	s.mu.Unlock()

	snapshot := s.Snapshot()
	s.pushToWatchers(snapshot)

	intent, err := order.NewNotificationIntent(s.orderID, updated.CustomerContact(), updated.Status())
	if err != nil {
		s.logger.Warn("could not build notification intent", "error", err)
		return snapshot, nil
	}
	go s.dispatchNotification(intent)

	return snapshot, nil
}

// admitLocation runs on the session loop. The feed already applied the
// monotonic-timestamp guard; the session only checks the report comes from
// the order's assigned driver.
func (s *Session) admitLocation(location tracking.LiveLocation) {
	current := s.currentOrder()

	driverID := current.Driver()
	if driverID == nil || !driverID.IsEqual(location.DriverID()) {
		s.logger.Debug("dropping position report from unassigned driver",
			"reporting_driver_id", location.DriverID().String())
		return
	}

	s.mu.Lock()
	s.location = location
	s.hasLocation = true
	s.mu.Unlock()

	select {
	case s.recompute <- struct{}{}:
	default:
	}
}

func (s *Session) recomputeWorker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.recompute:
		}

		s.mu.RLock()
		location, ok := s.location, s.hasLocation
		destination := s.ord.Address().Location()
		s.mu.RUnlock()
		if !ok {
			continue
		}

		_, _, err := s.composer.Update(s.ctx, location.Point(), s.restaurant, destination)
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("route recompute failed, keeping last route", "error", err)
		}
	}
}

func (s *Session) dispatchNotification(intent order.NotificationIntent) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, intent); err != nil {
		s.logger.Warn("notification dispatch failed",
			"status", intent.TargetStatus().String(), "error", err)
	}
}

func (s *Session) pushToWatchers(snapshot Snapshot) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	for _, ch := range s.watchers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func (s *Session) currentOrder() *order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ord
}
