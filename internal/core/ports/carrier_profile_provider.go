package ports

import (
	"context"

	"freightmatch/internal/core/domain/model/carrier"
	"freightmatch/internal/core/domain/model/kernel"
)

// CarrierProfileProvider resolves the matching profile for a carrier.
// The profile is read-model data assembled from account and vehicle records;
// it is never written through this port.
type CarrierProfileProvider interface {
	// GetProfile returns the profile for the given carrier.
	// When no profile data exists for the carrier, implementations return
	// carrier.DefaultProfile(carrierID) so matching degrades instead of
	// failing. Store failures are returned as errors and are never masked
	// by the default.
	GetProfile(ctx context.Context, carrierID kernel.UUID) (carrier.Profile, error)
}
