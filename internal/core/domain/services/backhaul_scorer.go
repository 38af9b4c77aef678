package services

import (
	"math"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"
)

const (
	// maxDeadheadMiles is where the deadhead component of the backhaul score
	// bottoms out; deadheads at or beyond this distance contribute nothing.
	maxDeadheadMiles = 100

	// deadheadPointsCap and payPointsCap split the 0-100 backhaul score into
	// two capped halves: short deadhead and high pay each earn up to 50 points.
	deadheadPointsCap = 50
	payPointsCap      = 50

	// payPerPoint converts return-leg pay into points: $100 of pay = 1 point.
	payPerPoint = 100
)

// BackhaulCandidate is the outcome of evaluating one return leg for an
// outbound job: the candidate itself, the true deadhead distance between the
// outbound drop and the candidate pickup, and the 0-100 match score.
type BackhaulCandidate struct {
	Job           *job.Job
	DeadheadMiles float64
	Score         int
}

// BackhaulScorer selects the best return leg for an outbound job using a
// distance/pay heuristic. Pure and stateless.
type BackhaulScorer struct{}

// NewBackhaulScorer creates a new BackhaulScorer instance.
func NewBackhaulScorer() BackhaulScorer {
	return BackhaulScorer{}
}

// MatchScore computes the 0-100 backhaul score for a return leg.
// Shorter deadhead and higher pay are better; each component is capped at 50
// points so neither can dominate the other.
func (s BackhaulScorer) MatchScore(deadheadMiles float64, returnPay float64) int {
	distanceScore := math.Max(0, (maxDeadheadMiles-deadheadMiles)/maxDeadheadMiles*deadheadPointsCap)
	payScore := math.Min(payPointsCap, returnPay/payPerPoint)

	return int(math.Round(distanceScore + payScore))
}

// BestReturnLeg evaluates candidate return legs for an outbound job and
// returns the highest-scoring one, or nil if none qualify.
//
// Candidates are assumed to be pre-filtered to open, unpaired jobs whose
// pickup lies inside the bounding box around the outbound drop and whose
// earliest start is not before the outbound's latest start. The bounding box
// is only a pre-filter: this method applies the true great-circle deadhead
// distance check against the radius, discarding box-corner candidates that
// exceed it.
//
// Ties are broken by candidate order, which callers keep deterministic by
// querying candidates in a stable order.
func (s BackhaulScorer) BestReturnLeg(
	outbound *job.Job,
	candidates []*job.Job,
	radiusKm float64,
) (*BackhaulCandidate, error) {
	if err := outbound.Validate(); err != nil {
		return nil, err
	}

	radiusMiles := kernel.KilometersToMiles(radiusKm)

	var best *BackhaulCandidate
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		if candidate.IsPaired() || candidate.Status() != job.Open {
			continue
		}
		if candidate.ID().IsEqual(outbound.ID()) {
			continue
		}

		deadheadMiles := outbound.Drop().MilesTo(candidate.Pickup())
		if deadheadMiles > radiusMiles {
			continue
		}

		score := s.MatchScore(deadheadMiles, candidate.PayAmount())
		if best == nil || score > best.Score {
			best = &BackhaulCandidate{
				Job:           candidate,
				DeadheadMiles: deadheadMiles,
				Score:         score,
			}
		}
	}

	return best, nil
}
