package commands

import (
	"context"

	"freightmatch/internal/core/domain/model/job"
)

// CreateJobCommandHandler persists newly posted jobs.
// New jobs always start in the open status and are immediately visible to
// matching queries.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
}

// NewCreateJobCommandHandler creates a handler for job posting operations.
func NewCreateJobCommandHandler(uowFactory JobUoWFactory) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the job creation command.
// Builds the aggregate from the command fields and stores it within a transaction.
func (h CreateJobCommandHandler) Handle(ctx context.Context, command CreateJobCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := job.NewJob(
		command.JobID(),
		command.Title(),
		command.Origin(),
		command.Destination(),
		command.Pickup(),
		command.Drop(),
		command.PayAmount(),
		command.EquipmentType(),
		command.EarliestStart(),
		command.LatestStart(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
