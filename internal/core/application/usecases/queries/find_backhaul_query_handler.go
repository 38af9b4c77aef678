package queries

import (
	"context"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/services"
	"freightmatch/internal/core/ports"
)

// findBackhaulCandidateLimit caps how many boxed candidates are evaluated.
const findBackhaulCandidateLimit = 50

// FindBackhaulQueryResponse describes the best return leg found for an
// outbound job.
type FindBackhaulQueryResponse struct {
	ReturnJobID   kernel.UUID
	Title         string
	Origin        string
	Destination   string
	PayAmount     float64
	EquipmentType string
	EarliestStart time.Time
	DeadheadMiles float64
	Score         int
}

// FindBackhaulQueryHandler searches for the best return leg for an outbound job.
//
// The store narrows candidates to a bounding box around the outbound drop;
// the scorer then applies the exact great-circle deadhead check, so a
// candidate sitting in the box's corner beyond the radius is discarded.
// Finding nothing is a normal outcome: the handler returns nil, not an error.
type FindBackhaulQueryHandler struct {
	jobRepo ports.JobRepository
	scorer  services.BackhaulScorer
}

// NewFindBackhaulQueryHandler creates a handler for return-leg searches.
func NewFindBackhaulQueryHandler(jobRepo ports.JobRepository) FindBackhaulQueryHandler {
	return FindBackhaulQueryHandler{
		jobRepo: jobRepo,
		scorer:  services.NewBackhaulScorer(),
	}
}

// Handle executes the search and returns the best return leg, or nil when no
// candidate qualifies. An unknown outbound job yields *errs.ObjectNotFoundError.
func (h FindBackhaulQueryHandler) Handle(
	ctx context.Context,
	query FindBackhaulQuery,
) (*FindBackhaulQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	outbound, err := h.jobRepo.Get(ctx, query.OutboundJobID())
	if err != nil {
		return nil, err
	}

	box, err := kernel.NewBoundingBox(outbound.Drop(), query.RadiusKm())
	if err != nil {
		return nil, err
	}

	candidates, err := h.jobRepo.GetOpenUnpairedInBox(
		ctx, box, outbound.LatestStart(), findBackhaulCandidateLimit,
	)
	if err != nil {
		return nil, err
	}

	best, err := h.scorer.BestReturnLeg(outbound, candidates, query.RadiusKm())
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, nil
	}

	return &FindBackhaulQueryResponse{
		ReturnJobID:   best.Job.ID(),
		Title:         best.Job.Title(),
		Origin:        best.Job.Origin(),
		Destination:   best.Job.Destination(),
		PayAmount:     best.Job.PayAmount(),
		EquipmentType: best.Job.EquipmentType(),
		EarliestStart: best.Job.EarliestStart(),
		DeadheadMiles: best.DeadheadMiles,
		Score:         best.Score,
	}, nil
}
