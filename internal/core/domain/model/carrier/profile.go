package carrier

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

const (
	// MinLevel is the lowest carrier experience level.
	MinLevel = 0
	// MaxLevel is the highest carrier experience level.
	MaxLevel = 10
)

// Defaults used when a carrier's account data is missing or incomplete.
// Matching degrades to a best-effort pass instead of failing the request.
const (
	defaultHomeLat     = 33.7490
	defaultHomeLon     = -84.3880
	defaultEquipment   = "box_truck"
	defaultLevel       = 1
	defaultRadiusKm    = 100
	defaultJobCategory = "delivery"
)

// ErrProfileIsNotConstructed is returned when using an improperly initialized Profile.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile constructor")

// Profile holds the scoring-relevant attributes of a carrier: where they are
// based, what they drive, how experienced they are and how far they prefer to
// travel. It is assembled on demand from account and vehicle data and never
// cached beyond a single matching call.
//
// Profile is an immutable value object; the zero value is invalid and must be
// created via NewProfile or DefaultProfile.
type Profile struct {
	carrierID kernel.UUID
	// home is the carrier's base of operations, used for pickup-distance
	// scoring and the backhaul home-return bonus
	home kernel.GeoPoint
	// equipment is the set of vehicle classes the carrier operates
	equipment []string
	// level is the loyalty/experience level in [MinLevel..MaxLevel]
	level int
	// preferredRadiusKm is how far from home the carrier prefers to work
	preferredRadiusKm float64
	// preferredCategories are the job categories the carrier favors
	preferredCategories []string

	guard guard.ConstructorGuard
}

// NewProfile creates a validated carrier Profile.
//
// Parameters:
//   - carrierID: The carrier's identifier (must be a valid UUID)
//   - home: The carrier's home base coordinates
//   - equipment: Vehicle classes operated (must be non-empty)
//   - level: Experience level, clamped to [MinLevel..MaxLevel] by validation
//   - preferredRadiusKm: Preferred working radius (must be positive)
//   - preferredCategories: Favored job categories (may be empty)
//
// Returns:
//   - Profile: A valid carrier profile
//   - error: Validation error if any parameter is invalid
func NewProfile(
	carrierID kernel.UUID,
	home kernel.GeoPoint,
	equipment []string,
	level int,
	preferredRadiusKm float64,
	preferredCategories []string,
) (Profile, error) {
	if err := carrierID.Validate(); err != nil {
		return Profile{}, err
	}
	if err := home.Validate(); err != nil {
		return Profile{}, err
	}
	if len(equipment) == 0 {
		return Profile{}, errs.NewValueIsRequiredError("equipment")
	}
	if level < MinLevel || level > MaxLevel {
		return Profile{}, errs.NewValueIsOutOfRangeError("level", level, MinLevel, MaxLevel)
	}
	if preferredRadiusKm <= 0 {
		return Profile{}, errs.NewValueIsInvalidError("preferredRadiusKm")
	}

	return Profile{
		carrierID:           carrierID,
		home:                home,
		equipment:           append([]string(nil), equipment...),
		level:               level,
		preferredRadiusKm:   preferredRadiusKm,
		preferredCategories: append([]string(nil), preferredCategories...),
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// DefaultProfile returns the conservative fallback profile used when a
// carrier's account data cannot be resolved. A best-effort scoring pass over
// a default profile is more useful to the caller than a failed request.
func DefaultProfile(carrierID kernel.UUID) Profile {
	home, _ := kernel.NewGeoPoint(defaultHomeLat, defaultHomeLon)
	profile, _ := NewProfile(
		carrierID,
		home,
		[]string{defaultEquipment},
		defaultLevel,
		defaultRadiusKm,
		[]string{defaultJobCategory},
	)
	return profile
}

// Validate checks if the Profile was properly constructed using a constructor.
func (p Profile) Validate() error {
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

// CarrierID returns the carrier's identifier.
func (p Profile) CarrierID() kernel.UUID {
	return p.carrierID
}

// Home returns the carrier's home base coordinates.
func (p Profile) Home() kernel.GeoPoint {
	return p.home
}

// Equipment returns the vehicle classes the carrier operates.
func (p Profile) Equipment() []string {
	return append([]string(nil), p.equipment...)
}

// OperatesEquipment reports whether the carrier operates the given vehicle class.
func (p Profile) OperatesEquipment(equipmentType string) bool {
	for _, e := range p.equipment {
		if e == equipmentType {
			return true
		}
	}
	return false
}

// Level returns the carrier's loyalty/experience level.
func (p Profile) Level() int {
	return p.level
}

// PreferredRadiusKm returns the carrier's preferred working radius.
func (p Profile) PreferredRadiusKm() float64 {
	return p.preferredRadiusKm
}

// PreferredCategories returns the job categories the carrier favors.
func (p Profile) PreferredCategories() []string {
	return append([]string(nil), p.preferredCategories...)
}
