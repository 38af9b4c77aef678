package commands

import (
	"context"
	"log/slog"
	"time"

	"freightmatch/internal/core/ports"
)

// RequestJobCommandHandler orchestrates the claim of an open job by a carrier.
// The domain aggregate enforces the status and lock rules; the conditional
// repository write makes the claim race-safe, so of two concurrent requesters
// exactly one wins and the other observes job.ErrInvalidJobState.
//
// Notification of the claim is best effort: a publish failure is logged and
// does not fail the command.
type RequestJobCommandHandler struct {
	uowFactory JobUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRequestJobCommandHandler creates a handler for job claim operations.
func NewRequestJobCommandHandler(
	uowFactory JobUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RequestJobCommandHandler {
	return RequestJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "request_job_handler"),
	}
}

// Handle processes the claim command.
// Loads the job, applies the domain claim rules (open status, lock expiry),
// and persists with a status-guarded update. After a successful commit the
// claim is announced through the notifier.
func (h RequestJobCommandHandler) Handle(ctx context.Context, command RequestJobCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()

	aggregate, err := jobRepo.Get(ctx, command.JobID())
	if err != nil {
		return err
	}

	// The guard values are captured before the transition: a fresh claim is
	// guarded on Open, a same-carrier lock refresh on Requested, and both on
	// the pairing link as read. A pairing committed after the read fails the
	// write instead of losing its link to this stale snapshot.
	priorStatus := aggregate.Status()
	priorPair := aggregate.PairedJobID()

	if err = aggregate.Request(command.CarrierID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = jobRepo.UpdateIfStatus(ctx, aggregate, priorStatus, priorPair); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.NotifyJobRequested(ctx, aggregate, command.CarrierID()); err != nil {
		h.logger.Warn("job claim notification failed",
			"job_id", aggregate.ID().String(),
			"carrier_id", command.CarrierID().String(),
			"error", err,
		)
	}

	return nil
}
