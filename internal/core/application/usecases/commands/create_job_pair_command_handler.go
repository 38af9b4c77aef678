package commands

import (
	"context"
	"fmt"
	"time"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/jobpair"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/services"
)

// CreateJobPairCommandHandler links two jobs as a backhaul pair.
//
// Both legs are re-fetched and re-validated inside the transaction that
// writes the pair, so a leg that was claimed or paired after the candidate
// search fails the pairing rather than producing a stale link. The symmetric
// job updates and the ledger insert commit together or not at all.
type CreateJobPairCommandHandler struct {
	uowFactory UoWFactory
	scorer     services.BackhaulScorer
}

// NewCreateJobPairCommandHandler creates a handler for pairing operations.
func NewCreateJobPairCommandHandler(uowFactory UoWFactory) CreateJobPairCommandHandler {
	return CreateJobPairCommandHandler{
		uowFactory: uowFactory,
		scorer:     services.NewBackhaulScorer(),
	}
}

// Handle processes the pairing command and returns the created ledger record.
// Fails with job.ErrInvalidJobState when a leg is no longer open and with
// job.ErrJobAlreadyPaired when a leg is already linked.
func (h CreateJobPairCommandHandler) Handle(
	ctx context.Context,
	command CreateJobPairCommand,
) (*jobpair.JobPair, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()

	outbound, err := jobRepo.Get(ctx, command.OutboundID())
	if err != nil {
		return nil, err
	}

	returnLeg, err := jobRepo.Get(ctx, command.ReturnID())
	if err != nil {
		return nil, err
	}

	if err = requireOpen(outbound); err != nil {
		return nil, err
	}
	if err = requireOpen(returnLeg); err != nil {
		return nil, err
	}

	if err = outbound.PairWith(returnLeg.ID()); err != nil {
		return nil, err
	}
	if err = returnLeg.PairWith(outbound.ID()); err != nil {
		return nil, err
	}

	deadheadMiles := outbound.Drop().MilesTo(returnLeg.Pickup())
	pair, err := jobpair.NewJobPair(
		kernel.NewUUID(),
		outbound.ID(),
		returnLeg.ID(),
		h.scorer.MatchScore(deadheadMiles, returnLeg.PayAmount()),
		deadheadMiles,
		outbound.PayAmount()+returnLeg.PayAmount(),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	// PairWith only succeeds on unpaired legs, so both writes guard on an
	// unpaired row. A pairing that committed after the reads above makes
	// the guard miss, and the whole pairing rolls back instead of leaving
	// an asymmetric link.
	if err = jobRepo.UpdateIfStatus(ctx, outbound, job.Open, nil); err != nil {
		return nil, err
	}
	if err = jobRepo.UpdateIfStatus(ctx, returnLeg, job.Open, nil); err != nil {
		return nil, err
	}

	if err = uow.JobPairRepository().Add(ctx, pair); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pair, nil
}

func requireOpen(aggregate *job.Job) error {
	if aggregate.Status() != job.Open {
		return fmt.Errorf("%w: job %s is %s, expected %s",
			job.ErrInvalidJobState, aggregate.ID(), aggregate.Status(), job.Open)
	}
	return nil
}
