package queries

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrGetPairedJobsQueryIsNotConstructed = errors.New(
	"GetPairedJobsQuery must be created via NewGetPairedJobsQuery constructor",
)

// defaultPairPageLimit is the page size used when the caller does not request one.
const defaultPairPageLimit = 50

// GetPairedJobsQuery retrieves the backhaul pair ledger with both legs'
// details for back-office review.
//
// Example:
//
//	query, err := NewGetPairedJobsQuery(0) // 0 means the default page size
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetPairedJobsQueryHandler(db)
//	pairs, err := handler.Handle(ctx, query)
type GetPairedJobsQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetPairedJobsQuery creates a query for the pair ledger.
// A limit of 0 selects the default page size; negative limits are rejected.
func NewGetPairedJobsQuery(limit int) (GetPairedJobsQuery, error) {
	pairsQuery := GetPairedJobsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := pairsQuery.setLimit(limit); err != nil {
		return GetPairedJobsQuery{}, err
	}

	return pairsQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPairedJobsQueryIsNotConstructed if validation fails.
func (q GetPairedJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetPairedJobsQueryIsNotConstructed)
}

// Limit returns the maximum number of pairs to return.
func (q GetPairedJobsQuery) Limit() int {
	return q.limit
}

func (q *GetPairedJobsQuery) setLimit(limit int) error {
	if limit < 0 {
		return errs.NewValueIsInvalidError("limit")
	}
	if limit == 0 {
		limit = defaultPairPageLimit
	}

	q.limit = limit
	return nil
}

// PairedLegResponse represents one leg of a pair in the read model.
type PairedLegResponse struct {
	JobID       kernel.UUID
	Title       string
	Origin      string
	Destination string
	PayAmount   float64
	Status      string
}

// GetPairedJobsQueryResponse represents one ledger entry with both legs.
type GetPairedJobsQueryResponse struct {
	PairID        kernel.UUID
	Score         int
	DeadheadMiles float64
	TotalPay      float64
	CreatedAt     time.Time
	Outbound      PairedLegResponse
	Return        PairedLegResponse
}
