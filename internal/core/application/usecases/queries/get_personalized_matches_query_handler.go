package queries

import (
	"context"

	"freightmatch/internal/core/domain/services"
	"freightmatch/internal/core/ports"
)

// matchCandidateLimit caps how many open jobs are scored per matching request.
const matchCandidateLimit = 200

// GetPersonalizedMatchesQueryHandler ranks open jobs for a carrier.
//
// Unlike the plain read-model queries, matching needs domain coordinates and
// the scorer, so this handler goes through the job repository instead of raw
// SQL. Candidates are fetched in a stable order, scored in memory, sorted by
// descending score with ascending job ID as the tie-break, and truncated to
// the requested page size.
type GetPersonalizedMatchesQueryHandler struct {
	jobRepo  ports.JobRepository
	profiles ports.CarrierProfileProvider
	scorer   services.MatchScorer
}

// NewGetPersonalizedMatchesQueryHandler creates a handler for match ranking queries.
func NewGetPersonalizedMatchesQueryHandler(
	jobRepo ports.JobRepository,
	profiles ports.CarrierProfileProvider,
) GetPersonalizedMatchesQueryHandler {
	return GetPersonalizedMatchesQueryHandler{
		jobRepo:  jobRepo,
		profiles: profiles,
		scorer:   services.NewMatchScorer(),
	}
}

// Handle executes the query and returns ranked matches for the carrier.
// A carrier without profile data is ranked against the default profile;
// store failures propagate rather than producing an empty result.
func (h GetPersonalizedMatchesQueryHandler) Handle(
	ctx context.Context,
	query GetPersonalizedMatchesQuery,
) ([]JobMatchResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.profiles.GetProfile(ctx, query.CarrierID())
	if err != nil {
		return nil, err
	}

	candidates, err := h.jobRepo.GetAllOpenUnpaired(ctx, matchCandidateLimit)
	if err != nil {
		return nil, err
	}

	matches := make([]JobMatchResponse, 0, len(candidates))
	for _, candidate := range candidates {
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
