// Package jobpair defines the immutable ledger record created when two jobs
// are linked as a backhaul pair. A JobPair is written exactly once per
// successful pairing, never updated, and queried for listing and analytics.
package jobpair

import (
	"errors"
	"fmt"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

// ErrJobPairIsNotConstructed is returned when using an improperly initialized JobPair.
var ErrJobPairIsNotConstructed = errors.New("JobPair must be created via NewJobPair constructor")

// JobPair records a committed backhaul pairing: the outbound leg, the return
// leg, the match score the pairing was selected on, the deadhead distance
// between the outbound drop and the return pickup, and the combined pay.
type JobPair struct {
	id         kernel.UUID
	outboundID kernel.UUID
	returnID   kernel.UUID

	// score is the 0-100 backhaul match score at pairing time
	score int
	// deadheadMiles is the revenue-free distance between the legs
	deadheadMiles float64
	// totalPay is the combined pay of both legs
	totalPay float64

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewJobPair creates a validated pairing record.
//
// Parameters:
//   - id: Unique identifier for the ledger row
//   - outboundID, returnID: The two linked jobs (must differ)
//   - score: Match score at pairing time
//   - deadheadMiles: Deadhead distance in miles (must be non-negative)
//   - totalPay: Combined pay of both legs (must be positive)
//   - createdAt: Pairing commit time
func NewJobPair(
	id kernel.UUID,
	outboundID kernel.UUID,
	returnID kernel.UUID,
	score int,
	deadheadMiles float64,
	totalPay float64,
	createdAt time.Time,
) (*JobPair, error) {
	if err := errors.Join(id.Validate(), outboundID.Validate(), returnID.Validate()); err != nil {
		return nil, err
	}
	if outboundID.IsEqual(returnID) {
		return nil, errs.NewValueIsInvalidErrorWithCause("returnId",
			errors.New("outbound and return legs must be different jobs"))
	}
	if deadheadMiles < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("deadheadMiles",
			fmt.Errorf("%v is negative", deadheadMiles))
	}
	if totalPay <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalPay",
			fmt.Errorf("%v is not greater than 0", totalPay))
	}

	return &JobPair{
		id:            id,
		outboundID:    outboundID,
		returnID:      returnID,
		score:         score,
		deadheadMiles: deadheadMiles,
		totalPay:      totalPay,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the JobPair instance was properly constructed.
func (p *JobPair) Validate() error {
	if p == nil {
		return ErrJobPairIsNotConstructed
	}
	return p.guard.Validate(ErrJobPairIsNotConstructed)
}

// ID returns the ledger row identifier.
func (p *JobPair) ID() kernel.UUID { return p.id }

// OutboundID returns the outbound leg's job ID.
func (p *JobPair) OutboundID() kernel.UUID { return p.outboundID }

// ReturnID returns the return leg's job ID.
func (p *JobPair) ReturnID() kernel.UUID { return p.returnID }

// Score returns the match score the pairing was committed on.
func (p *JobPair) Score() int { return p.score }

// DeadheadMiles returns the deadhead distance between the legs in miles.
func (p *JobPair) DeadheadMiles() float64 { return p.deadheadMiles }

// TotalPay returns the combined pay of both legs.
func (p *JobPair) TotalPay() float64 { return p.totalPay }

// CreatedAt returns the pairing commit time.
func (p *JobPair) CreatedAt() time.Time { return p.createdAt }
