package queries

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrFindBackhaulQueryIsNotConstructed = errors.New(
	"FindBackhaulQuery must be created via NewFindBackhaulQuery constructor",
)

// defaultBackhaulSearchRadiusKm bounds the deadhead between the outbound drop
// and a return pickup when no radius is given.
const defaultBackhaulSearchRadiusKm = 160

// FindBackhaulQuery searches for the best return leg for an outbound job.
// Candidates must be open, unpaired, start no earlier than the outbound's
// latest start, and pick up within the deadhead radius of the outbound drop.
//
// Example:
//
//	query, err := NewFindBackhaulQuery(outboundID, 0) // 0 means the default radius
//	if err != nil {
//	    return err
//	}
//
//	handler := NewFindBackhaulQueryHandler(jobRepo)
//	result, err := handler.Handle(ctx, query)
//	if result == nil {
//	    // no viable return leg
//	}
type FindBackhaulQuery struct { //nolint:recvcheck //using for validation
	outboundJobID kernel.UUID
	radiusKm      float64

	guard guard.ConstructorGuard
}

// NewFindBackhaulQuery creates a return-leg search query.
// A radius of 0 selects the default of 160 km; negative radii are rejected.
func NewFindBackhaulQuery(outboundJobID kernel.UUID, radiusKm float64) (FindBackhaulQuery, error) {
	backhaulQuery := FindBackhaulQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		backhaulQuery.setOutboundJobID(outboundJobID),
		backhaulQuery.setRadiusKm(radiusKm),
	); err != nil {
		return FindBackhaulQuery{}, err
	}

	return backhaulQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrFindBackhaulQueryIsNotConstructed if validation fails.
func (q FindBackhaulQuery) Validate() error {
	return q.guard.Validate(ErrFindBackhaulQueryIsNotConstructed)
}

// OutboundJobID returns the identifier of the outbound leg.
func (q FindBackhaulQuery) OutboundJobID() kernel.UUID {
	return q.outboundJobID
}

// RadiusKm returns the deadhead search radius in kilometers.
func (q FindBackhaulQuery) RadiusKm() float64 {
	return q.radiusKm
}

func (q *FindBackhaulQuery) setOutboundJobID(outboundJobID kernel.UUID) error {
	if err := outboundJobID.Validate(); err != nil {
		return err
	}

	q.outboundJobID = outboundJobID
	return nil
}

func (q *FindBackhaulQuery) setRadiusKm(radiusKm float64) error {
	if radiusKm < 0 {
		return errs.NewValueIsInvalidError("radiusKm")
	}
	if radiusKm == 0 {
		radiusKm = defaultBackhaulSearchRadiusKm
	}

	q.radiusKm = radiusKm
	return nil
}
