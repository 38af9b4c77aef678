package services

import (
	"math"

	"freightmatch/internal/core/domain/model/carrier"
	"freightmatch/internal/core/domain/model/job"
)

// Weights of the scoring model. They sum to 1.0; each factor is normalized
// into a comparable range before weighting.
const (
	distanceWeight  = 0.35
	payWeight       = 0.40
	equipmentWeight = 0.15
	levelWeight     = 0.10

	// maxDistanceRewardKm is where the pickup-distance factor bottoms out:
	// pickups beyond this distance from the carrier's home contribute nothing.
	maxDistanceRewardKm = 200

	// payDivisor normalizes pay into the same rough range as the other factors.
	// The pay factor is deliberately unbounded upward so high-value loads dominate.
	payDivisor = 10

	// equipmentMatchScore applies when the carrier operates the required
	// vehicle class; equipmentPartialScore applies otherwise. An unmatched job
	// is penalized, not excluded, because equipment lists may be incomplete.
	equipmentMatchScore   = 100
	equipmentPartialScore = 50

	// HomeReturnRadiusKm and HomeReturnBonus drive backhaul-biased scoring:
	// a job whose drop point lies within the radius of the carrier's home gets
	// the flat bonus, because a load that brings the carrier home is worth
	// more to them than its raw score suggests.
	HomeReturnRadiusKm = 50
	HomeReturnBonus    = 50
)

// Factors breaks a match score into its unweighted component contributions so
// callers can explain why a job ranked where it did.
type Factors struct {
	// Distance is max(0, 200 - km(home -> pickup))
	Distance float64
	// Pay is payAmount / 10
	Pay float64
	// Equipment is 100 on an equipment match, 50 otherwise
	Equipment float64
	// Level is (carrierLevel / 10) * 100
	Level float64
}

// ScoredJob pairs a job with its computed match score and factor breakdown.
// It is a transient response shape, never persisted.
type ScoredJob struct {
	Job     *job.Job
	Score   int
	Factors Factors
}

// MatchScorer computes the weighted match score of a job for a carrier.
// It is a pure function of its inputs: no randomness, no clock, no state.
//
// Example usage:
//
//	scorer := services.NewMatchScorer()
//	scored, err := scorer.Score(openJob, profile)
//	if err != nil {
//	    // One of the inputs was not properly constructed
//	}
//	fmt.Printf("job %s scored %d\n", scored.Job.ID(), scored.Score)
type MatchScorer struct{}

// NewMatchScorer creates a new MatchScorer instance.
func NewMatchScorer() MatchScorer {
	return MatchScorer{}
}

// Score computes the weighted match score for (job, profile).
//
// The model combines four normalized factors:
//   - distance (weight 0.35): closer pickups are strictly better, zero beyond 200 km
//   - pay (weight 0.40): unbounded upward, the dominant factor for high-value loads
//   - equipment (weight 0.15): full credit on a match, partial credit otherwise
//   - level (weight 0.10): the carrier's loyalty/experience level scaled to 0-100
//
// The final score is the weighted sum rounded to the nearest integer.
// Identical inputs always yield identical results.
func (s MatchScorer) Score(j *job.Job, profile carrier.Profile) (ScoredJob, error) {
	if err := j.Validate(); err != nil {
		return ScoredJob{}, err
	}
	if err := profile.Validate(); err != nil {
		return ScoredJob{}, err
	}

	distKm := profile.Home().KilometersTo(j.Pickup())
	distScore := math.Max(0, maxDistanceRewardKm-distKm)

	payScore := j.PayAmount() / payDivisor

	equipmentScore := float64(equipmentPartialScore)
	if profile.OperatesEquipment(j.EquipmentType()) {
		equipmentScore = equipmentMatchScore
	}

	levelScore := float64(profile.Level()) / carrier.MaxLevel * 100

	raw := distanceWeight*distScore +
		payWeight*payScore +
		equipmentWeight*equipmentScore +
		levelWeight*levelScore

	return ScoredJob{
		Job:   j,
		Score: int(math.Round(raw)),
		Factors: Factors{
			Distance:  distScore,
			Pay:       payScore,
			Equipment: equipmentScore,
			Level:     levelScore,
		},
	}, nil
}

// ScoreBackhaulCandidate scores a job with the backhaul bias applied: the base
// match score plus HomeReturnBonus when the job's drop point lies within
// HomeReturnRadiusKm of the carrier's home base.
func (s MatchScorer) ScoreBackhaulCandidate(j *job.Job, profile carrier.Profile) (ScoredJob, error) {
	scored, err := s.Score(j, profile)
	if err != nil {
		return ScoredJob{}, err
	}

	if profile.Home().KilometersTo(j.Drop()) < HomeReturnRadiusKm {
		scored.Score += HomeReturnBonus
	}

	return scored, nil
}
