package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrCreateJobPairCommandIsNotConstructed = errors.New(
	"CreateJobPairCommand must be created via NewCreateJobPairCommand constructor",
)

// CreateJobPairCommand represents a request to link an outbound job with a
// return leg as a backhaul pair. Pairing is all or nothing: both jobs get
// their symmetric link and a pair ledger record is written in one transaction.
//
// Example:
//
//	cmd, err := NewCreateJobPairCommand(outboundID, returnID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewCreateJobPairCommandHandler(uowFactory)
//	pair, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, job.ErrJobAlreadyPaired) {
//	    // one of the legs was paired concurrently
//	}
type CreateJobPairCommand struct { //nolint:recvcheck //using for validation
	outboundID kernel.UUID
	returnID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateJobPairCommand creates a command to pair two jobs.
// Both identifiers must be valid and distinct.
func NewCreateJobPairCommand(outboundID kernel.UUID, returnID kernel.UUID) (CreateJobPairCommand, error) {
	pairCommand := CreateJobPairCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pairCommand.setOutboundID(outboundID),
		pairCommand.setReturnID(returnID),
	); err != nil {
		return CreateJobPairCommand{}, err
	}

	if outboundID.IsEqual(returnID) {
		return CreateJobPairCommand{}, errs.NewValueIsInvalidError("returnId")
	}

	return pairCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateJobPairCommandIsNotConstructed if validation fails.
func (c CreateJobPairCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobPairCommandIsNotConstructed)
}

// OutboundID returns the identifier of the outbound leg.
func (c CreateJobPairCommand) OutboundID() kernel.UUID {
	return c.outboundID
}

// ReturnID returns the identifier of the return leg.
func (c CreateJobPairCommand) ReturnID() kernel.UUID {
	return c.returnID
}

func (c *CreateJobPairCommand) setOutboundID(outboundID kernel.UUID) error {
	if err := outboundID.Validate(); err != nil {
		return err
	}

	c.outboundID = outboundID
	return nil
}

func (c *CreateJobPairCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}

	c.returnID = returnID
	return nil
}
