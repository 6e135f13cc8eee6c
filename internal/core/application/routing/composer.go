// Package routing implements the route composer: it keeps a
// driver → restaurant → destination route current without asking the
// road-routing capability to recompute on every minor position jitter.
package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/tracking"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// DefaultToleranceMeters treats driver movement below this distance as
// positioning noise that never triggers a route recompute.
const DefaultToleranceMeters = 25.0

// Composer caches the route computed for the last materially distinct
// waypoint set. Update compares each incoming coordinate against the set the
// cached route was computed from; only movement beyond the tolerance issues a
// new routing request. The cached (waypoints, route) pair is swapped
// atomically, and on a routing failure the previous route is retained.
//
// Safe for concurrent use; Update calls are serialized internally.
type Composer struct {
	client          ports.RouteClient
	toleranceMeters float64
	logger          *slog.Logger

	// updateMu serializes Update so two recomputes cannot interleave.
	updateMu sync.Mutex

	// mu guards the cached state for readers.
	mu          sync.RWMutex
	lastUsed    tracking.RouteWaypoints
	hasLastUsed bool
	route       tracking.Route
	hasRoute    bool
}

// NewComposer creates a composer over the given routing capability.
// toleranceMeters must be positive; use DefaultToleranceMeters unless the
// deployment configures otherwise.
func NewComposer(client ports.RouteClient, toleranceMeters float64, logger *slog.Logger) (*Composer, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("route client")
	}
	if toleranceMeters <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("tolerance meters",
			fmt.Errorf("%f is not greater than 0", toleranceMeters))
	}

	return &Composer{
		client:          client,
		toleranceMeters: toleranceMeters,
		logger:          logger.With("component", "route_composer"),
	}, nil
}

// Route returns the cached route, if any.
func (c *Composer) Route() (tracking.Route, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.route, c.hasRoute
}

// Update offers the current waypoint inputs and recomputes the route when any
// of them moved beyond the tolerance since the cached route was computed.
//
// Returns the route now in effect and whether a recompute was issued. When
// the routing capability fails, the previous route is returned (recomputed ==
// false) together with an error wrapping ports.ErrRouteUnavailable; the
// cached waypoints are not advanced, so the next material change retries.
func (c *Composer) Update(
	ctx context.Context,
	driver kernel.GeoPoint,
	restaurant kernel.GeoPoint,
	destination kernel.GeoPoint,
) (tracking.Route, bool, error) {
	waypoints, err := tracking.NewRouteWaypoints(driver, restaurant, destination)
	if err != nil {
		return tracking.Route{}, false, err
	}

	c.updateMu.Lock()
	defer c.updateMu.Unlock()

	c.mu.RLock()
	cached, hasCached := c.route, c.hasRoute
	lastUsed, hasLastUsed := c.lastUsed, c.hasLastUsed
	c.mu.RUnlock()

	if hasCached && hasLastUsed {
		material, tolErr := c.movedBeyondTolerance(lastUsed, waypoints)
		if tolErr != nil {
			return tracking.Route{}, false, tolErr
		}
		if !material {
			return cached, false, nil
		}
	}

	route, err := c.client.ComputeRoute(ctx, waypoints)
	if err != nil {
		c.logger.Warn("Route recompute failed, serving last good route", "error", err)
		return cached, false, err
	}

	c.mu.Lock()
	c.route = route
	c.hasRoute = true
	c.lastUsed = waypoints
	c.hasLastUsed = true
	c.mu.Unlock()

	return route, true, nil
}

// movedBeyondTolerance reports whether any waypoint moved more than the
// tolerance between the two sets.
func (c *Composer) movedBeyondTolerance(previous, current tracking.RouteWaypoints) (bool, error) {
	pairs := [][2]kernel.GeoPoint{
		{previous.Driver(), current.Driver()},
		{previous.Restaurant(), current.Restaurant()},
		{previous.Destination(), current.Destination()},
	}

	for _, pair := range pairs {
		within, err := pair[0].WithinMeters(pair[1], c.toleranceMeters)
		if err != nil {
			return false, err
		}
		if !within {
			return true, nil
		}
	}

	return false, nil
}

// RouteAge returns how long ago the cached route was computed, or false when
// no route has been computed yet.
func (c *Composer) RouteAge(now time.Time) (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasRoute {
		return 0, false
	}
	return now.Sub(c.route.ComputedAt()), true
}
