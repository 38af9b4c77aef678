package kernel_test

import (
	"testing"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates_valid_point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(33.7490, -84.3880)

		require.NoError(t, err)
		assert.InDelta(t, 33.7490, p.Latitude(), 1e-9)
		assert.InDelta(t, -84.3880, p.Longitude(), 1e-9)
		require.NoError(t, p.Validate())
	})

	t.Run("accepts_boundary_coordinates", func(t *testing.T) {
		cases := []struct {
			name     string
			lat, lon float64
		}{
			{"north_pole", 90, 0},
			{"south_pole", -90, 0},
			{"date_line_east", 0, 180},
			{"date_line_west", 0, -180},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.NoError(t, err)
			})
		}
	})

	t.Run("rejects_out_of_range_coordinates", func(t *testing.T) {
		cases := []struct {
			name     string
			lat, lon float64
		}{
			{"latitude_too_high", 90.1, 0},
			{"latitude_too_low", -90.1, 0},
			{"longitude_too_high", 0, 180.1},
			{"longitude_too_low", 0, -180.1},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var p kernel.GeoPoint
		require.Error(t, p.Validate())
	})
}

func TestGeoPoint_Distance(t *testing.T) {
	atlanta, err := kernel.NewGeoPoint(33.7490, -84.3880)
	require.NoError(t, err)
	nashville, err := kernel.NewGeoPoint(36.1627, -86.7816)
	require.NoError(t, err)

	t.Run("identical_points_have_zero_distance", func(t *testing.T) {
		assert.InDelta(t, 0, atlanta.KilometersTo(atlanta), 1e-9)
		assert.InDelta(t, 0, atlanta.MilesTo(atlanta), 1e-9)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		assert.InDelta(t, atlanta.KilometersTo(nashville), nashville.KilometersTo(atlanta), 1e-9)
		assert.InDelta(t, atlanta.MilesTo(nashville), nashville.MilesTo(atlanta), 1e-9)
	})

	t.Run("atlanta_to_nashville_is_roughly_346_km", func(t *testing.T) {
		assert.InDelta(t, 346, atlanta.KilometersTo(nashville), 5)
	})

	t.Run("miles_and_kilometers_are_consistent", func(t *testing.T) {
		km := atlanta.KilometersTo(nashville)
		mi := atlanta.MilesTo(nashville)
		assert.InDelta(t, km*3959/6371, mi, 0.01)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal_points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(10, 20)
		b, _ := kernel.NewGeoPoint(10, 20)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(10, 20)
		b, _ := kernel.NewGeoPoint(10, 21)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(10, 20)
		var b kernel.GeoPoint

		_, err := a.IsEqual(b)
		require.Error(t, err)
	})
}

func TestNewBoundingBox(t *testing.T) {
	center, err := kernel.NewGeoPoint(33.7490, -84.3880)
	require.NoError(t, err)

	t.Run("box_spans_radius_in_degrees", func(t *testing.T) {
		box, boxErr := kernel.NewBoundingBox(center, 111)
		require.NoError(t, boxErr)

		assert.InDelta(t, 32.7490, box.MinLat, 1e-9)
		assert.InDelta(t, 34.7490, box.MaxLat, 1e-9)
		assert.InDelta(t, -85.3880, box.MinLon, 1e-9)
		assert.InDelta(t, -83.3880, box.MaxLon, 1e-9)
	})

	t.Run("contains_center_and_nearby_points", func(t *testing.T) {
		box, boxErr := kernel.NewBoundingBox(center, 160)
		require.NoError(t, boxErr)

		assert.True(t, box.Contains(center))

		near, _ := kernel.NewGeoPoint(34.0, -84.0)
		assert.True(t, box.Contains(near))

		far, _ := kernel.NewGeoPoint(40.0, -84.0)
		assert.False(t, box.Contains(far))
	})

	t.Run("rejects_non_positive_radius", func(t *testing.T) {
		_, boxErr := kernel.NewBoundingBox(center, 0)
		require.Error(t, boxErr)
		require.ErrorIs(t, boxErr, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_unconstructed_center", func(t *testing.T) {
		var p kernel.GeoPoint
		_, boxErr := kernel.NewBoundingBox(p, 100)
		require.Error(t, boxErr)
	})
}
