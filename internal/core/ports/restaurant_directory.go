package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// RestaurantDirectory resolves restaurant identifiers to pickup coordinates.
// Orders reference restaurants by id only; the directory supplies the
// waypoint the route composer needs.
type RestaurantDirectory interface {
	// GetLocation returns the restaurant's pickup coordinates.
	GetLocation(ctx context.Context, restaurantID kernel.UUID) (kernel.GeoPoint, error)
}
