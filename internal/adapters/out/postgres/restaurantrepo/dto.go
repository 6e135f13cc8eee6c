// Package restaurantrepo resolves restaurant identifiers to pickup
// coordinates from the restaurants table.
package restaurantrepo

import (
	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for restaurant records.
// Only the fields the tracking core needs; the full restaurant profile lives
// elsewhere on the platform.
type RestaurantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Latitude  float64
	Longitude float64
}

// TableName overrides GORM's default naming convention to use "restaurants".
func (RestaurantDTO) TableName() string {
	return "restaurants"
}
