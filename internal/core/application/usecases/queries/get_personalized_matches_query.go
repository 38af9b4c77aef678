package queries

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrGetPersonalizedMatchesQueryIsNotConstructed = errors.New(
	"GetPersonalizedMatchesQuery must be created via NewGetPersonalizedMatchesQuery constructor",
)

// defaultMatchLimit is the page size used when the caller does not request one.
const defaultMatchLimit = 20

// GetPersonalizedMatchesQuery retrieves open jobs ranked for a carrier.
// Ranking weighs proximity to the carrier's home base, pay, equipment fit,
// and carrier level.
//
// Example:
//
//	query, err := NewGetPersonalizedMatchesQuery(carrierID, 10)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetPersonalizedMatchesQueryHandler(jobRepo, profiles)
//	matches, err := handler.Handle(ctx, query)
type GetPersonalizedMatchesQuery struct { //nolint:recvcheck //using for validation
	carrierID kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

// NewGetPersonalizedMatchesQuery creates a query for a carrier's ranked matches.
// A limit of 0 selects the default page size; negative limits are rejected.
func NewGetPersonalizedMatchesQuery(carrierID kernel.UUID, limit int) (GetPersonalizedMatchesQuery, error) {
	matchQuery := GetPersonalizedMatchesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		matchQuery.setCarrierID(carrierID),
		matchQuery.setLimit(limit),
	); err != nil {
		return GetPersonalizedMatchesQuery{}, err
	}

	return matchQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPersonalizedMatchesQueryIsNotConstructed if validation fails.
func (q GetPersonalizedMatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetPersonalizedMatchesQueryIsNotConstructed)
}

// CarrierID returns the carrier the matches are ranked for.
func (q GetPersonalizedMatchesQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

// Limit returns the maximum number of matches to return.
func (q GetPersonalizedMatchesQuery) Limit() int {
	return q.limit
}

func (q *GetPersonalizedMatchesQuery) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	q.carrierID = carrierID
	return nil
}

func (q *GetPersonalizedMatchesQuery) setLimit(limit int) error {
	if limit < 0 {
		return errs.NewValueIsInvalidError("limit")
	}
	if limit == 0 {
		limit = defaultMatchLimit
	}

	q.limit = limit
	return nil
}
