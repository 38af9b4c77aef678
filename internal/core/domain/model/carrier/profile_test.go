package carrier_test

import (
	"testing"

	"freightmatch/internal/core/domain/model/carrier"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	home, err := kernel.NewGeoPoint(33.7490, -84.3880)
	require.NoError(t, err)

	t.Run("creates_valid_profile", func(t *testing.T) {
		p, profileErr := carrier.NewProfile(
			kernel.NewUUID(), home,
			[]string{"box_truck", "sprinter"}, 5, 200, []string{"delivery"},
		)
		require.NoError(t, profileErr)

		require.NoError(t, p.Validate())
		assert.Equal(t, 5, p.Level())
		assert.InDelta(t, 200, p.PreferredRadiusKm(), 1e-9)
		assert.Equal(t, []string{"box_truck", "sprinter"}, p.Equipment())
	})

	t.Run("rejects_empty_equipment", func(t *testing.T) {
		_, profileErr := carrier.NewProfile(kernel.NewUUID(), home, nil, 5, 200, nil)
		require.ErrorIs(t, profileErr, errs.ErrValueIsRequired)
	})

	t.Run("rejects_out_of_range_level", func(t *testing.T) {
		_, profileErr := carrier.NewProfile(kernel.NewUUID(), home, []string{"van"}, 11, 200, nil)
		require.ErrorIs(t, profileErr, errs.ErrValueIsOutOfRange)

		_, profileErr = carrier.NewProfile(kernel.NewUUID(), home, []string{"van"}, -1, 200, nil)
		require.ErrorIs(t, profileErr, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_non_positive_radius", func(t *testing.T) {
		_, profileErr := carrier.NewProfile(kernel.NewUUID(), home, []string{"van"}, 5, 0, nil)
		require.ErrorIs(t, profileErr, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p carrier.Profile
		require.ErrorIs(t, p.Validate(), carrier.ErrProfileIsNotConstructed)
	})
}

func TestProfile_OperatesEquipment(t *testing.T) {
	home, _ := kernel.NewGeoPoint(33.7490, -84.3880)
	p, err := carrier.NewProfile(kernel.NewUUID(), home, []string{"box_truck", "sprinter"}, 3, 100, nil)
	require.NoError(t, err)

	assert.True(t, p.OperatesEquipment("box_truck"))
	assert.True(t, p.OperatesEquipment("sprinter"))
	assert.False(t, p.OperatesEquipment("semi_truck"))
	assert.False(t, p.OperatesEquipment(""))
}

func TestDefaultProfile(t *testing.T) {
	carrierID := kernel.NewUUID()
	p := carrier.DefaultProfile(carrierID)

	require.NoError(t, p.Validate())
	assert.True(t, p.CarrierID().IsEqual(carrierID))
	assert.Equal(t, 1, p.Level())
	assert.True(t, p.OperatesEquipment("box_truck"))
	assert.InDelta(t, 33.7490, p.Home().Latitude(), 1e-9)
	assert.InDelta(t, -84.3880, p.Home().Longitude(), 1e-9)
}
