package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/ports"
)

// UpdateJobStatusCommandHandler advances jobs along their lifecycle.
//
// Authorization matrix:
//   - requested: any carrier (equivalent to a claim through this endpoint)
//   - assigned, paid: dispatcher or admin
//   - picked_up, delivered: the carrier the job is assigned to
//
// The write is guarded on the status the job had when it was read, so two
// concurrent transitions out of the same status cannot both succeed.
type UpdateJobStatusCommandHandler struct {
	uowFactory JobUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewUpdateJobStatusCommandHandler creates a handler for lifecycle transitions.
func NewUpdateJobStatusCommandHandler(
	uowFactory JobUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) UpdateJobStatusCommandHandler {
	return UpdateJobStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "update_job_status_handler"),
	}
}

// Handle processes the status transition command.
// Checks the actor's permission for the requested transition, applies the
// domain transition, and persists with a status-guarded update.
func (h UpdateJobStatusCommandHandler) Handle(ctx context.Context, command UpdateJobStatusCommand) error {
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

	// Transitions never touch the pairing link, so the guard carries the
	// link as read to keep a concurrent pairing from being overwritten.
	priorStatus := aggregate.Status()
	priorPair := aggregate.PairedJobID()

	if err = h.applyTransition(aggregate, command); err != nil {
		return err
	}

	if err = jobRepo.UpdateIfStatus(ctx, aggregate, priorStatus, priorPair); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.NotifyStatusChanged(ctx, aggregate, priorStatus); err != nil {
		h.logger.Warn("status change notification failed",
			"job_id", aggregate.ID().String(),
			"from", priorStatus.String(),
			"to", aggregate.Status().String(),
			"error", err,
		)
	}

	return nil
}

func (h UpdateJobStatusCommandHandler) applyTransition(
	aggregate *job.Job,
	command UpdateJobStatusCommand,
) error {
	now := time.Now().UTC()

	switch command.NewStatus() {
	case job.Requested:
		if command.ActorRole() != RoleCarrier {
			return h.permissionError(command, "only carriers may claim jobs")
		}
		return aggregate.Request(command.ActorID(), now)

	case job.Assigned:
		if !command.ActorRole().IsBackOffice() {
			return h.permissionError(command, "only dispatchers may confirm assignments")
		}
		return aggregate.MarkAssigned(now)

	case job.PickedUp:
		if err := h.requireAssignedCarrier(aggregate, command); err != nil {
			return err
		}
		return aggregate.MarkPickedUp(now)

	case job.Delivered:
		if err := h.requireAssignedCarrier(aggregate, command); err != nil {
			return err
		}
		return aggregate.MarkDelivered(now)

	case job.Paid:
		if !command.ActorRole().IsBackOffice() {
			return h.permissionError(command, "only dispatchers may settle jobs")
		}
		return aggregate.MarkPaid(now)

	default:
		return fmt.Errorf("%w: cannot transition into %s",
			job.ErrInvalidStateTransition, command.NewStatus())
	}
}

func (h UpdateJobStatusCommandHandler) requireAssignedCarrier(
	aggregate *job.Job,
	command UpdateJobStatusCommand,
) error {
	if command.ActorRole() != RoleCarrier {
		return h.permissionError(command, "only the hauling carrier may report progress")
	}

	assignedTo := aggregate.AssignedTo()
	if assignedTo == nil || !assignedTo.IsEqual(command.ActorID()) {
		return h.permissionError(command, "job is assigned to a different carrier")
	}

	return nil
}

func (h UpdateJobStatusCommandHandler) permissionError(command UpdateJobStatusCommand, reason string) error {
	return fmt.Errorf("%w: %s as %s: %s",
		job.ErrPermissionDenied, command.NewStatus(), command.ActorRole(), reason)
}
