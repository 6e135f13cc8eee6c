// Package kernel contains the shared value objects of the domain model:
// identifiers and geographic coordinates.
//
// Every type here is an immutable value object created through a validating
// constructor. Zero values are deliberately invalid and are caught by
// Validate(), backed by the constructor-guard pattern from internal/pkg/guard.
//
//   - UUID: identity for orders, customers, restaurants, and drivers
//   - GeoPoint: a latitude/longitude pair in decimal degrees with Haversine
//     distance and tolerance checks
package kernel
