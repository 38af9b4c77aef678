package commands

import (
	"context"
	"log/slog"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/jobpair"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/services"
)

const (
	// sweepOutboundLimit caps how many open jobs one sweep considers as
	// outbound legs.
	sweepOutboundLimit = 200

	// sweepCandidateLimit caps how many return candidates are fetched per
	// outbound leg.
	sweepCandidateLimit = 50
)

// PairCreator pairs two jobs transactionally.
// Satisfied by CreateJobPairCommandHandler.
type PairCreator interface {
	Handle(ctx context.Context, command CreateJobPairCommand) (*jobpair.JobPair, error)
}

// BuildBackhaulsCommandHandler runs the pairing sweep over all open,
// unpaired jobs.
//
// Each pairing commits in its own transaction through PairCreator. A pairing
// that fails its in-transaction preconditions (a leg claimed or paired since
// the candidate search) is logged and skipped; the sweep continues with the
// remaining jobs. The handler tracks legs paired within the current sweep so
// a job is never offered as both an outbound and a return leg in one run.
type BuildBackhaulsCommandHandler struct {
	uowFactory  JobUoWFactory
	pairCreator PairCreator
	scorer      services.BackhaulScorer
	logger      *slog.Logger
}

// NewBuildBackhaulsCommandHandler creates a handler for the pairing sweep.
func NewBuildBackhaulsCommandHandler(
	uowFactory JobUoWFactory,
	pairCreator PairCreator,
	logger *slog.Logger,
) BuildBackhaulsCommandHandler {
	return BuildBackhaulsCommandHandler{
		uowFactory:  uowFactory,
		pairCreator: pairCreator,
		scorer:      services.NewBackhaulScorer(),
		logger:      logger.With("component", "build_backhauls_handler"),
	}
}

// Handle processes the sweep command and returns the number of pairs created.
// An empty result is a normal outcome, not an error.
func (h BuildBackhaulsCommandHandler) Handle(ctx context.Context, command BuildBackhaulsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	outbounds, err := h.fetchOutbounds(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	pairedInSweep := make(map[kernel.UUID]bool)

	for _, outbound := range outbounds {
		if pairedInSweep[outbound.ID()] {
			continue
		}

		best, err := h.findReturnLeg(ctx, outbound, command.RadiusKm())
		if err != nil {
			return created, err
		}
		if best == nil || pairedInSweep[best.Job.ID()] {
			continue
		}

		pairCommand, err := NewCreateJobPairCommand(outbound.ID(), best.Job.ID())
		if err != nil {
			return created, err
		}

		if _, err = h.pairCreator.Handle(ctx, pairCommand); err != nil {
			h.logger.Warn("pairing skipped",
				"outbound_id", outbound.ID().String(),
				"return_id", best.Job.ID().String(),
				"error", err,
			)
			continue
		}

		pairedInSweep[outbound.ID()] = true
		pairedInSweep[best.Job.ID()] = true
		created++
	}

	return created, nil
}

func (h BuildBackhaulsCommandHandler) fetchOutbounds(ctx context.Context) ([]*job.Job, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbounds, err := uow.JobRepository().GetAllOpenUnpaired(ctx, sweepOutboundLimit)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return outbounds, nil
}

func (h BuildBackhaulsCommandHandler) findReturnLeg(
	ctx context.Context,
	outbound *job.Job,
	radiusKm float64,
) (*services.BackhaulCandidate, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	box, err := kernel.NewBoundingBox(outbound.Drop(), radiusKm)
	if err != nil {
		return nil, err
	}

	candidates, err := uow.JobRepository().GetOpenUnpairedInBox(
		ctx, box, outbound.LatestStart(), sweepCandidateLimit,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return h.scorer.BestReturnLeg(outbound, candidates, radiusKm)
}
