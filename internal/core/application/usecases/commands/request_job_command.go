package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var ErrRequestJobCommandIsNotConstructed = errors.New(
	"RequestJobCommand must be created via NewRequestJobCommand constructor",
)

// RequestJobCommand represents a carrier's attempt to claim an open job.
// A successful claim moves the job to requested and holds it for the carrier
// under a short expiring lock until a dispatcher confirms the assignment.
//
// Example:
//
//	cmd, err := NewRequestJobCommand(jobID, carrierID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewRequestJobCommandHandler(uowFactory, notifier, logger)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, job.ErrJobLocked):
//	    // another carrier holds the claim
//	case errors.Is(err, job.ErrInvalidJobState):
//	    // job is no longer open
//	}
type RequestJobCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestJobCommand creates a command for a carrier to claim a job.
// Both identifiers must be valid UUIDs.
func NewRequestJobCommand(jobID kernel.UUID, carrierID kernel.UUID) (RequestJobCommand, error) {
	requestCommand := RequestJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requestCommand.setJobID(jobID),
		requestCommand.setCarrierID(carrierID),
	); err != nil {
		return RequestJobCommand{}, err
	}

	return requestCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRequestJobCommandIsNotConstructed if validation fails.
func (c RequestJobCommand) Validate() error {
	return c.guard.Validate(ErrRequestJobCommandIsNotConstructed)
}

// JobID returns the identifier of the job being claimed.
func (c RequestJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// CarrierID returns the identifier of the claiming carrier.
func (c RequestJobCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

func (c *RequestJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *RequestJobCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	c.carrierID = carrierID
	return nil
}
