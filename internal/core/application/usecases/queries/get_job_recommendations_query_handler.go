package queries

import (
	"context"

	"freightmatch/internal/core/domain/services"
	"freightmatch/internal/core/ports"
)

// recommendationCandidateLimit caps how many filtered jobs are scored per request.
const recommendationCandidateLimit = 100

// GetJobRecommendationsQueryHandler ranks jobs that satisfy a carrier's hard
// requirements. Equipment and pay filters run in the store; the distance
// filter runs in memory against the scored distance because it needs the
// carrier's home coordinates.
type GetJobRecommendationsQueryHandler struct {
	jobRepo  ports.JobRepository
	profiles ports.CarrierProfileProvider
	scorer   services.MatchScorer
}

// NewGetJobRecommendationsQueryHandler creates a handler for recommendation queries.
func NewGetJobRecommendationsQueryHandler(
	jobRepo ports.JobRepository,
	profiles ports.CarrierProfileProvider,
) GetJobRecommendationsQueryHandler {
	return GetJobRecommendationsQueryHandler{
		jobRepo:  jobRepo,
		profiles: profiles,
		scorer:   services.NewMatchScorer(),
	}
}

// Handle executes the query and returns ranked, filtered recommendations.
func (h GetJobRecommendationsQueryHandler) Handle(
	ctx context.Context,
	query GetJobRecommendationsQuery,
) ([]JobMatchResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.profiles.GetProfile(ctx, query.CarrierID())
	if err != nil {
		return nil, err
	}

	candidates, err := h.jobRepo.GetOpenFiltered(ctx, ports.JobFilter{
		EquipmentType: query.EquipmentType(),
		MinPay:        query.MinPay(),
	}, recommendationCandidateLimit)
	if err != nil {
		return nil, err
	}

	matches := make([]JobMatchResponse, 0, len(candidates))
	for _, candidate := range candidates {
		if query.MaxDistanceKm() > 0 &&
			profile.Home().KilometersTo(candidate.Pickup()) > query.MaxDistanceKm() {
			continue
		}

		scored, scoreErr := h.scorer.Score(candidate, profile)
		if scoreErr != nil {
			return nil, scoreErr
		}
		matches = append(matches, toJobMatchResponse(scored))
	}

	sortMatchesByScore(matches)

	if len(matches) > query.Limit() {
		matches = matches[:query.Limit()]
	}

	return matches, nil
}
