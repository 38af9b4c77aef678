package carrierrepo

import (
	"context"
	"errors"

	"freightmatch/internal/core/domain/model/carrier"
	"freightmatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCarrierProfileProvider implements CarrierProfileProvider over the
// carrier account and vehicle tables.
//
// A carrier without an account row, or with an account that cannot produce a
// valid profile, gets carrier.DefaultProfile so matching degrades instead of
// failing. Store failures are returned untouched and never masked by the
// default.
type GormCarrierProfileProvider struct {
	db *gorm.DB
}

// NewGormCarrierProfileProvider creates a profile provider over the given database.
func NewGormCarrierProfileProvider(db *gorm.DB) *GormCarrierProfileProvider {
	return &GormCarrierProfileProvider{db: db}
}

// GetProfile assembles the matching profile for a carrier from its account
// and vehicles.
func (p *GormCarrierProfileProvider) GetProfile(
	ctx context.Context,
	carrierID kernel.UUID,
) (carrier.Profile, error) {
	if err := carrierID.Validate(); err != nil {
		return carrier.Profile{}, err
	}

	var account CarrierAccountDTO
	err := p.db.WithContext(ctx).First(&account, "id = ?", carrierID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return carrier.DefaultProfile(carrierID), nil
	}
	if err != nil {
		return carrier.Profile{}, err
	}

	var vehicles []CarrierVehicleDTO
	err = p.db.WithContext(ctx).
		Where("carrier_id = ?", carrierID.Bytes()).
		Order("equipment_type").
		Find(&vehicles).Error
	if err != nil {
		return carrier.Profile{}, err
	}

	equipment := make([]string, 0, len(vehicles))
	seen := make(map[string]bool)
	for _, vehicle := range vehicles {
		if vehicle.EquipmentType == "" || seen[vehicle.EquipmentType] {
			continue
		}
		seen[vehicle.EquipmentType] = true
		equipment = append(equipment, vehicle.EquipmentType)
	}

	home, err := kernel.NewGeoPoint(account.HomeLat, account.HomeLon)
	if err != nil {
		return carrier.DefaultProfile(carrierID), nil
	}

	profile, err := carrier.NewProfile(
		carrierID,
		home,
		equipment,
		account.Level,
		account.PreferredRadiusKm,
		splitCategories(account.PreferredCategories),
	)
	if err != nil {
		return carrier.DefaultProfile(carrierID), nil
	}

	return profile, nil
}
