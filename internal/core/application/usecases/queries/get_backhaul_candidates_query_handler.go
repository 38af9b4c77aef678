package queries

import (
	"context"

	"freightmatch/internal/core/domain/services"
	"freightmatch/internal/core/ports"
)

// backhaulCandidateLimit caps how many open jobs are considered per request.
const backhaulCandidateLimit = 50

// GetBackhaulCandidatesQueryHandler ranks open jobs for a carrier with the
// home-return bonus applied: a job dropping off near the carrier's home base
// scores higher than the plain match score would give it.
type GetBackhaulCandidatesQueryHandler struct {
	jobRepo  ports.JobRepository
	profiles ports.CarrierProfileProvider
	scorer   services.MatchScorer
}

// NewGetBackhaulCandidatesQueryHandler creates a handler for backhaul candidate queries.
func NewGetBackhaulCandidatesQueryHandler(
	jobRepo ports.JobRepository,
	profiles ports.CarrierProfileProvider,
) GetBackhaulCandidatesQueryHandler {
	return GetBackhaulCandidatesQueryHandler{
		jobRepo:  jobRepo,
		profiles: profiles,
		scorer:   services.NewMatchScorer(),
	}
}

// Handle executes the query and returns home-biased rankings for the carrier.
func (h GetBackhaulCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetBackhaulCandidatesQuery,
) ([]JobMatchResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.profiles.GetProfile(ctx, query.CarrierID())
	if err != nil {
		return nil, err
	}

	candidates, err := h.jobRepo.GetAllOpenUnpaired(ctx, backhaulCandidateLimit)
	if err != nil {
		return nil, err
	}

	matches := make([]JobMatchResponse, 0, len(candidates))
	for _, candidate := range candidates {
		scored, scoreErr := h.scorer.ScoreBackhaulCandidate(candidate, profile)
		if scoreErr != nil {
			return nil, scoreErr
		}
		matches = append(matches, toJobMatchResponse(scored))
	}

	sortMatchesByScore(matches)

	return matches, nil
}
