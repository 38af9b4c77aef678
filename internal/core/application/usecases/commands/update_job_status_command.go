package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrUpdateJobStatusCommandIsNotConstructed = errors.New(
	"UpdateJobStatusCommand must be created via NewUpdateJobStatusCommand constructor",
)

// UpdateJobStatusCommand represents a request to advance a job along its
// lifecycle: requested -> assigned -> picked_up -> delivered -> paid.
// The acting party is part of the command because each transition is
// restricted to a particular role.
//
// Example:
//
//	cmd, err := NewUpdateJobStatusCommand(jobID, job.Assigned, dispatcherID, RoleDispatcher)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewUpdateJobStatusCommandHandler(uowFactory, notifier, logger)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, job.ErrPermissionDenied):
//	    // actor may not perform this transition
//	case errors.Is(err, job.ErrInvalidStateTransition):
//	    // job is not in the right state
//	}
type UpdateJobStatusCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	newStatus job.Status
	actorID   kernel.UUID
	actorRole Role

	guard guard.ConstructorGuard
}

// NewUpdateJobStatusCommand creates a command to advance a job's status.
// The target status must be a valid lifecycle status other than open:
// jobs become open by creation, never by transition.
func NewUpdateJobStatusCommand(
	jobID kernel.UUID,
	newStatus job.Status,
	actorID kernel.UUID,
	actorRole Role,
) (UpdateJobStatusCommand, error) {
	statusCommand := UpdateJobStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setJobID(jobID),
		statusCommand.setNewStatus(newStatus),
		statusCommand.setActor(actorID, actorRole),
	); err != nil {
		return UpdateJobStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateJobStatusCommandIsNotConstructed if validation fails.
func (c UpdateJobStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobStatusCommandIsNotConstructed)
}

// JobID returns the identifier of the job being advanced.
func (c UpdateJobStatusCommand) JobID() kernel.UUID {
	return c.jobID
}

// NewStatus returns the requested target status.
func (c UpdateJobStatusCommand) NewStatus() job.Status {
	return c.newStatus
}

// ActorID returns the identifier of the acting party.
func (c UpdateJobStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the acting party.
func (c UpdateJobStatusCommand) ActorRole() Role {
	return c.actorRole
}

func (c *UpdateJobStatusCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *UpdateJobStatusCommand) setNewStatus(newStatus job.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if newStatus == job.Open {
		return errs.NewValueIsInvalidError("newStatus")
	}

	c.newStatus = newStatus
	return nil
}

func (c *UpdateJobStatusCommand) setActor(actorID kernel.UUID, actorRole Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
