package ports

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/tracking"
)

// ErrRouteUnavailable is the sentinel for road-routing capability failures.
// Non-fatal: the caller keeps serving the last good route and surfaces a soft
// warning.
var ErrRouteUnavailable = errors.New("route unavailable")

// RouteClient is the contract with the external road-routing capability:
// waypoints in, polyline plus ETA out. Implementations must respect the
// context so an abandoned recompute can be cancelled.
type RouteClient interface {
	// ComputeRoute requests a route through the given waypoints.
	// Failures wrap ErrRouteUnavailable.
	ComputeRoute(ctx context.Context, waypoints tracking.RouteWaypoints) (tracking.Route, error)
}
