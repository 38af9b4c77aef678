// Package carrierrepo resolves carrier matching profiles from carrier account
// and vehicle records. The profile is a read model: this package never writes.
package carrierrepo

import (
	"strings"

	"github.com/google/uuid"
)

// CarrierAccountDTO represents the carrier account row backing a profile.
type CarrierAccountDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	HomeLat             float64   `gorm:"type:double precision"`
	HomeLon             float64   `gorm:"type:double precision"`
	Level               int
	PreferredRadiusKm   float64 `gorm:"type:double precision"`
	PreferredCategories string  `gorm:"type:text"`
}

// TableName specifies the database table name for carrier accounts.
func (CarrierAccountDTO) TableName() string {
	return "carrier_accounts"
}

// CarrierVehicleDTO represents one vehicle owned by a carrier.
// The equipment types of all vehicles form the carrier's equipment set.
type CarrierVehicleDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CarrierID     uuid.UUID `gorm:"type:uuid;index"`
	EquipmentType string    `gorm:"type:text"`
}

// TableName specifies the database table name for carrier vehicles.
func (CarrierVehicleDTO) TableName() string {
	return "carrier_vehicles"
}

// splitCategories parses the comma-separated preferred categories column.
func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	categories := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			categories = append(categories, trimmed)
		}
	}

	return categories
}
