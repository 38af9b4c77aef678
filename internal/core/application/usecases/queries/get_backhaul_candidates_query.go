package queries

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var ErrGetBackhaulCandidatesQueryIsNotConstructed = errors.New(
	"GetBackhaulCandidatesQuery must be created via NewGetBackhaulCandidatesQuery constructor",
)

// GetBackhaulCandidatesQuery retrieves open jobs ranked for a carrier with a
// bias toward loads that end near the carrier's home base. It is the
// carrier-facing view of backhaul opportunity: same scoring as personalized
// matches plus a home-return bonus.
//
// Example:
//
//	query, err := NewGetBackhaulCandidatesQuery(carrierID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetBackhaulCandidatesQueryHandler(jobRepo, profiles)
//	candidates, err := handler.Handle(ctx, query)
type GetBackhaulCandidatesQuery struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBackhaulCandidatesQuery creates a query for home-biased job rankings.
func NewGetBackhaulCandidatesQuery(carrierID kernel.UUID) (GetBackhaulCandidatesQuery, error) {
	backhaulQuery := GetBackhaulCandidatesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := backhaulQuery.setCarrierID(carrierID); err != nil {
		return GetBackhaulCandidatesQuery{}, err
	}

	return backhaulQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBackhaulCandidatesQueryIsNotConstructed if validation fails.
func (q GetBackhaulCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetBackhaulCandidatesQueryIsNotConstructed)
}

// CarrierID returns the carrier the candidates are ranked for.
func (q GetBackhaulCandidatesQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

func (q *GetBackhaulCandidatesQuery) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	q.carrierID = carrierID
	return nil
}
