package restaurantrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRestaurantDirectory implements ports.RestaurantDirectory using GORM.
type GormRestaurantDirectory struct {
	db *gorm.DB
}

// NewGormRestaurantDirectory creates a new GORM restaurant directory.
func NewGormRestaurantDirectory(db *gorm.DB) *GormRestaurantDirectory {
	return &GormRestaurantDirectory{db: db}
}

// GetLocation returns the restaurant's pickup coordinates.
func (r *GormRestaurantDirectory) GetLocation(ctx context.Context, restaurantID kernel.UUID) (kernel.GeoPoint, error) {
	if err := restaurantID.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", restaurantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.GeoPoint{}, errs.NewObjectNotFoundError("restaurant", restaurantID.String())
		}
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
}

// Add saves a restaurant record. Used by setup and tests; the tracking core
// itself only reads.
func (r *GormRestaurantDirectory) Add(ctx context.Context, restaurantID kernel.UUID, name string, location kernel.GeoPoint) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if err := location.Validate(); err != nil {
		return err
	}

	dto := RestaurantDTO{
		ID:        restaurantID.Bytes(),
		Name:      name,
		Latitude:  location.Latitude(),
		Longitude: location.Longitude(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
