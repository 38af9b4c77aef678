package kernel

import (
	"errors"
	"fmt"
	"math"

	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

const (
	// MinLatitude is the minimum valid latitude in degrees.
	MinLatitude float64 = -90
	// MaxLatitude is the maximum valid latitude in degrees.
	MaxLatitude float64 = 90
	// MinLongitude is the minimum valid longitude in degrees.
	MinLongitude float64 = -180
	// MaxLongitude is the maximum valid longitude in degrees.
	MaxLongitude float64 = 180

	// earthRadiusKm is the mean Earth radius in kilometers used by the haversine formula.
	earthRadiusKm = 6371
	// earthRadiusMi is the mean Earth radius in miles used by the haversine formula.
	earthRadiusMi = 3959

	// kmPerDegree approximates the surface distance covered by one degree of
	// latitude. Used only for bounding-box pre-filters, never as a final
	// distance check. Acceptable at the mid-latitudes the system operates in.
	kmPerDegree = 111
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
// GeoPoints must be created via the NewGeoPoint constructor to ensure valid coordinates.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate with validated latitude and longitude.
// GeoPoint is an immutable value object; the zero value is invalid and will fail
// validation - use NewGeoPoint to create instances.
//
// Distance methods are named by the unit they return (KilometersTo, MilesTo) so a
// caller can never silently mix a kilometer radius with a mile distance.
//
// Example:
//
//	atlanta, err := kernel.NewGeoPoint(33.7490, -84.3880)
//	if err != nil {
//	    // Handle validation error
//	}
//	nashville, _ := kernel.NewGeoPoint(36.1627, -86.7816)
//	km := atlanta.KilometersTo(nashville)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates in degrees.
// Latitude must be within [MinLatitude..MaxLatitude] and longitude within
// [MinLongitude..MaxLongitude]. Returns an error if either is out of bounds.
//
// Parameters:
//   - lat: Latitude in decimal degrees
//   - lon: Longitude in decimal degrees
//
// Returns:
//   - GeoPoint: A valid geographic point
//   - error: Validation error if a coordinate is out of bounds
func NewGeoPoint(lat float64, lon float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks if the GeoPoint was properly constructed using the constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.lat
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.lon
}

// String returns a human-readable representation in the form "GeoPoint(lat,lon)".
// This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lon)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// KilometersTo returns the great-circle (haversine) distance to another point in kilometers.
// The distance is symmetric and zero for identical points.
//
// Example:
//
//	km := carrierHome.KilometersTo(jobPickup)
func (p GeoPoint) KilometersTo(other GeoPoint) float64 {
	return haversine(p, other) * earthRadiusKm
}

// MilesTo returns the great-circle (haversine) distance to another point in miles.
// Used where the caller compares against a mile-denominated radius, such as
// deadhead distance checks.
func (p GeoPoint) MilesTo(other GeoPoint) float64 {
	return haversine(p, other) * earthRadiusMi
}

// setLat sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

// setLon sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (p *GeoPoint) setLon(lon float64) error {
	if lon < MinLongitude || lon > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lon", lon, MinLongitude, MaxLongitude)
	}

	p.lon = lon
	return nil
}

// haversine computes the central angle between two points.
// Multiplying by an Earth radius yields the surface distance in that radius' unit.
func haversine(a, b GeoPoint) float64 {
	dLat := toRadians(b.lat - a.lat)
	dLon := toRadians(b.lon - a.lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.lat))*math.Cos(toRadians(b.lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// toRadians converts decimal degrees to radians.
func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// milesPerKilometer converts kilometer quantities into miles.
const milesPerKilometer = 0.621371

// KilometersToMiles converts a kilometer distance into miles.
// Callers that hold a kilometer-denominated radius but compare against a
// mile-denominated distance must convert through this function rather than
// inlining the factor, so the unit change is visible at the call site.
func KilometersToMiles(km float64) float64 {
	return km * milesPerKilometer
}

// BoundingBox is a latitude/longitude rectangle around a center point.
// It is a coarse pre-filter for radius searches: every point within the radius
// lies inside the box, but box corners exceed the radius, so callers must apply
// a true great-circle distance check to candidates afterwards.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// NewBoundingBox builds a box around center sized to radiusKm, converting the
// radius to a degree delta with the ~111 km/degree approximation.
// The center point must be properly constructed.
func NewBoundingBox(center GeoPoint, radiusKm float64) (BoundingBox, error) {
	if err := center.Validate(); err != nil {
		return BoundingBox{}, err
	}
	if radiusKm <= 0 {
		return BoundingBox{}, errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%v is not greater than 0", radiusKm))
	}

	delta := radiusKm / kmPerDegree
	return BoundingBox{
		MinLat: center.lat - delta,
		MaxLat: center.lat + delta,
		MinLon: center.lon - delta,
		MaxLon: center.lon + delta,
	}, nil
}

// Contains reports whether the point lies inside the box, borders inclusive.
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.lat >= b.MinLat && p.lat <= b.MaxLat &&
		p.lon >= b.MinLon && p.lon <= b.MaxLon
}
