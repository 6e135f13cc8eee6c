package kernel_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   bool
	}{
		{"valid_point", 40.7128, -74.0060, false},
		{"equator_meridian", 0, 0, false},
		{"latitude_min_boundary", -90, 10, false},
		{"latitude_max_boundary", 90, 10, false},
		{"longitude_min_boundary", 10, -180, false},
		{"longitude_max_boundary", 10, 180, false},
		{"latitude_too_small", -90.01, 0, true},
		{"latitude_too_large", 90.01, 0, true},
		{"longitude_too_small", 0, -180.01, true},
		{"longitude_too_large", 0, 180.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := kernel.NewGeoPoint(tt.latitude, tt.longitude)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.latitude, point.Latitude(), 0)
			assert.InDelta(t, tt.longitude, point.Longitude(), 0)
		})
	}
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("constructed_point_is_valid", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(51.5074, -0.1278)
		require.NoError(t, err)
		require.NoError(t, point.Validate())
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var point kernel.GeoPoint
		require.ErrorIs(t, point.Validate(), kernel.ErrGeoPointIsNotConstructed)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal_points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(41.0082, 28.9784)
		b, _ := kernel.NewGeoPoint(41.0082, 28.9784)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(41.0082, 28.9784)
		b, _ := kernel.NewGeoPoint(41.0083, 28.9784)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(41.0082, 28.9784)
		var b kernel.GeoPoint

		_, err := a.IsEqual(b)
		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceMeters(t *testing.T) {
	t.Run("zero_distance_to_itself", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(40.7128, -74.0060)

		distance, err := point.DistanceMeters(point)
		require.NoError(t, err)
		assert.InDelta(t, 0, distance, 0.001)
	})

	t.Run("known_city_pair", func(t *testing.T) {
		// New York City to Los Angeles, roughly 3936 km great-circle.
		nyc, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		la, _ := kernel.NewGeoPoint(34.0522, -118.2437)

		distance, err := nyc.DistanceMeters(la)
		require.NoError(t, err)
		assert.InDelta(t, 3_936_000, distance, 10_000)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(48.8566, 2.3522)
		b, _ := kernel.NewGeoPoint(52.5200, 13.4050)

		ab, err := a.DistanceMeters(b)
		require.NoError(t, err)
		ba, err := b.DistanceMeters(a)
		require.NoError(t, err)
		assert.InDelta(t, ab, ba, 0.001)
	})

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(48.8566, 2.3522)
		var b kernel.GeoPoint

		_, err := a.DistanceMeters(b)
		require.Error(t, err)
	})
}

func TestGeoPoint_WithinMeters(t *testing.T) {
	// Roughly 15.6 m apart: 0.00014 degrees of latitude.
	a, _ := kernel.NewGeoPoint(40.712800, -74.006000)
	b, _ := kernel.NewGeoPoint(40.712940, -74.006000)

	t.Run("inside_radius", func(t *testing.T) {
		within, err := a.WithinMeters(b, 25)
		require.NoError(t, err)
		assert.True(t, within)
	})

	t.Run("outside_radius", func(t *testing.T) {
		within, err := a.WithinMeters(b, 10)
		require.NoError(t, err)
		assert.False(t, within)
	})
}
