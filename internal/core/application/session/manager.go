package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/application/feed"
	"fooddelivery/internal/core/application/routing"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ErrOrderFinished is returned when a session is requested for an order that
// already reached a terminal status.
var ErrOrderFinished = errors.New("order is already in a terminal status")

// Manager owns the open tracking sessions, keyed by order id. It is the only
// component that creates sessions, wires them to the position feed, and
// tears them down.
type Manager struct {
	backend     ports.OrderBackend
	notifier    ports.Notifier
	routes      ports.RouteClient
	restaurants ports.RestaurantDirectory
	feed        *feed.Feed

	toleranceMeters float64
	logger          *slog.Logger

	mu       sync.Mutex
	sessions map[kernel.UUID]*Session
}

// NewManager creates a session manager. toleranceMeters configures the route
// composers it builds; pass routing.DefaultToleranceMeters unless the
// deployment overrides it.
func NewManager(
	backend ports.OrderBackend,
	notifier ports.Notifier,
	routes ports.RouteClient,
	restaurants ports.RestaurantDirectory,
	positionFeed *feed.Feed,
	toleranceMeters float64,
	logger *slog.Logger,
) (*Manager, error) {
	if backend == nil {
		return nil, errs.NewValueIsRequiredError("order backend")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if routes == nil {
		return nil, errs.NewValueIsRequiredError("route client")
	}
	if restaurants == nil {
		return nil, errs.NewValueIsRequiredError("restaurant directory")
	}
	if positionFeed == nil {
		return nil, errs.NewValueIsRequiredError("position feed")
	}
	if toleranceMeters <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("tolerance meters",
			fmt.Errorf("%f is not greater than 0", toleranceMeters))
	}

	return &Manager{
		backend:         backend,
		notifier:        notifier,
		routes:          routes,
		restaurants:     restaurants,
		feed:            positionFeed,
		toleranceMeters: toleranceMeters,
		logger:          logger.With("component", "session_manager"),
		sessions:        make(map[kernel.UUID]*Session),
	}, nil
}

// Open starts a tracking session for the order, loading it from the backend
// and subscribing the session to the position feed. Opening an already-open
// order returns the existing session. Orders in a terminal status cannot be
// opened.
func (m *Manager) Open(ctx context.Context, orderID kernel.UUID) (*Session, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	if existing, ok := m.Get(orderID); ok {
		return existing, nil
	}

	ord, err := m.backend.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord.Status().IsTerminal() {
		return nil, fmt.Errorf("%w: %s", ErrOrderFinished, ord.Status())
	}

	restaurant, err := m.restaurants.GetLocation(ctx, ord.RestaurantID())
	if err != nil {
		return nil, err
	}

	composer, err := routing.NewComposer(m.routes, m.toleranceMeters, m.logger)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have opened the session while we were loading.
	if existing, ok := m.sessions[orderID]; ok {
		return existing, nil
	}

	sess := newSession(ord, restaurant, m.backend, m.notifier, composer, m.logger)

	unsubscribe, err := m.feed.Subscribe(orderID, sess.OnLocationUpdate)
	if err != nil {
		sess.Close()
		return nil, err
	}
	sess.unsubscribe = unsubscribe

	m.sessions[orderID] = sess
	m.logger.Info("tracking session opened", "order_id", orderID.String())

	return sess, nil
}

// Get returns the open session for an order, if any.
func (m *Manager) Get(orderID kernel.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[orderID]
	return sess, ok
}

// Snapshots returns the current view of every open session.
func (m *Manager) Snapshots() []Snapshot {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(sessions))
	for _, sess := range sessions {
		snapshots = append(snapshots, sess.Snapshot())
	}
	return snapshots
}

// Close tears down the session for an order. Idempotent; closing an order
// with no open session does nothing.
func (m *Manager) Close(orderID kernel.UUID) {
	m.mu.Lock()
	sess, ok := m.sessions[orderID]
	delete(m.sessions, orderID)
	m.mu.Unlock()

	if !ok {
		return
	}

	sess.Close()
	m.logger.Info("tracking session closed", "order_id", orderID.String())
}

// CloseFinished closes every open session whose order reached a terminal
// status. Returns how many sessions were closed. Run periodically by the
// session janitor job.
func (m *Manager) CloseFinished() int {
	m.mu.Lock()
	finished := make([]*Session, 0)
	for orderID, sess := range m.sessions {
		if sess.Snapshot().Status.IsTerminal() {
			finished = append(finished, sess)
			delete(m.sessions, orderID)
		}
	}
	m.mu.Unlock()

	for _, sess := range finished {
		sess.Close()
		m.logger.Info("tracking session closed by janitor", "order_id", sess.OrderID().String())
	}

	return len(finished)
}

// CloseAll tears down every open session. Used during shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		all = append(all, sess)
	}
	m.sessions = make(map[kernel.UUID]*Session)
	m.mu.Unlock()

	for _, sess := range all {
		sess.Close()
	}
}
