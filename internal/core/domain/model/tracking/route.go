package tracking

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrRouteWaypointsAreNotConstructed is returned when RouteWaypoints were
	// not created via NewRouteWaypoints.
	ErrRouteWaypointsAreNotConstructed = errors.New(
		"RouteWaypoints must be created via NewRouteWaypoints constructor")

	// ErrRouteIsNotConstructed is returned when a Route was not created via
	// NewRoute.
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")
)

// RouteWaypoints is the ordered triple submitted to the road-routing
// capability: driver position, then restaurant, then delivery destination.
// Immutable value object; a fresh set is built whenever any member moved
// beyond the movement tolerance, never on every position tick.
type RouteWaypoints struct { //nolint:recvcheck //using for validation
	driver      kernel.GeoPoint
	restaurant  kernel.GeoPoint
	destination kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewRouteWaypoints creates the validated waypoint triple.
func NewRouteWaypoints(driver, restaurant, destination kernel.GeoPoint) (RouteWaypoints, error) {
	waypoints := RouteWaypoints{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		waypoints.setDriver(driver),
		waypoints.setRestaurant(restaurant),
		waypoints.setDestination(destination),
	); err != nil {
		return RouteWaypoints{}, err
	}

	return waypoints, nil
}

// Validate ensures the waypoints were created through NewRouteWaypoints.
func (w RouteWaypoints) Validate() error {
	return w.guard.Validate(ErrRouteWaypointsAreNotConstructed)
}

// Driver returns the driver position waypoint.
func (w RouteWaypoints) Driver() kernel.GeoPoint { return w.driver }

// Restaurant returns the restaurant waypoint.
func (w RouteWaypoints) Restaurant() kernel.GeoPoint { return w.restaurant }

// Destination returns the delivery destination waypoint.
func (w RouteWaypoints) Destination() kernel.GeoPoint { return w.destination }

// Points returns the waypoints in routing order: driver, restaurant,
// destination.
func (w RouteWaypoints) Points() []kernel.GeoPoint {
	return []kernel.GeoPoint{w.driver, w.restaurant, w.destination}
}

func (w *RouteWaypoints) setDriver(driver kernel.GeoPoint) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	w.driver = driver
	return nil
}

func (w *RouteWaypoints) setRestaurant(restaurant kernel.GeoPoint) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}
	w.restaurant = restaurant
	return nil
}

func (w *RouteWaypoints) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	w.destination = destination
	return nil
}

// Route is the road-routing capability's answer for a waypoint set: an
// encoded polyline, the estimated arrival time in minutes, and when it was
// computed. Immutable value object.
type Route struct { //nolint:recvcheck //using for validation
	polyline   string
	etaMinutes int
	computedAt time.Time

	guard guard.ConstructorGuard
}

// NewRoute creates a validated route.
// The polyline must be non-empty and the ETA non-negative.
func NewRoute(polyline string, etaMinutes int, computedAt time.Time) (Route, error) {
	route := Route{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		route.setPolyline(polyline),
		route.setEtaMinutes(etaMinutes),
		route.setComputedAt(computedAt),
	); err != nil {
		return Route{}, err
	}

	return route, nil
}

// Validate ensures the route was created through NewRoute.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// Polyline returns the encoded route geometry.
func (r Route) Polyline() string { return r.polyline }

// EtaMinutes returns the estimated arrival time in minutes.
func (r Route) EtaMinutes() int { return r.etaMinutes }

// ComputedAt returns when the route was computed.
func (r Route) ComputedAt() time.Time { return r.computedAt }

func (r *Route) setPolyline(polyline string) error {
	if polyline == "" {
		return errs.NewValueIsRequiredError("polyline")
	}
	r.polyline = polyline
	return nil
}

func (r *Route) setEtaMinutes(etaMinutes int) error {
	if etaMinutes < 0 {
		return errs.NewValueIsInvalidError("eta minutes")
	}
	r.etaMinutes = etaMinutes
	return nil
}

func (r *Route) setComputedAt(computedAt time.Time) error {
	if computedAt.IsZero() {
		return errs.NewValueIsRequiredError("computed at")
	}
	r.computedAt = computedAt
	return nil
}
