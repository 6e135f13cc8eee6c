// Package tracking contains the live-delivery value objects: driver position
// reports, routing waypoints, and computed routes.
//
// LiveLocation carries the out-of-order delivery guard (Supersedes): a report
// with an older or equal timestamp never replaces the one already held for an
// order. RouteWaypoints is the ordered driver → restaurant → destination
// triple the routing capability consumes, and Route is its polyline + ETA
// answer.
package tracking
