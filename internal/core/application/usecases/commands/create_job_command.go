package commands

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand represents a request to post a new freight job.
// Encapsulates the route, pay, equipment requirement, and pickup window.
//
// Example:
//
//	jobID := kernel.NewUUID()
//	cmd, err := NewCreateJobCommand(
//	    jobID, "Produce to Nashville", "Atlanta, GA", "Nashville, TN",
//	    pickup, drop, 850, "box_truck", earliest, latest,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid job data: %w", err)
//	}
//
//	handler := NewCreateJobCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create job: %w", err)
//	}
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID         kernel.UUID
	title         string
	origin        string
	destination   string
	pickup        kernel.GeoPoint
	drop          kernel.GeoPoint
	payAmount     float64
	equipmentType string
	earliestStart time.Time
	latestStart   time.Time

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a command to post a new job.
// Validates identifiers and coordinates; route labels must not be empty,
// pay must be positive, and the pickup window must not be inverted.
func NewCreateJobCommand(
	jobID kernel.UUID,
	title string,
	origin string,
	destination string,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	payAmount float64,
	equipmentType string,
	earliestStart time.Time,
	latestStart time.Time,
) (CreateJobCommand, error) {
	jobCommand := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		jobCommand.setJobID(jobID),
		jobCommand.setTitle(title),
		jobCommand.setRoute(origin, destination),
		jobCommand.setPoints(pickup, drop),
		jobCommand.setPayAmount(payAmount),
		jobCommand.setEquipmentType(equipmentType),
		jobCommand.setWindow(earliestStart, latestStart),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return jobCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateJobCommandIsNotConstructed if validation fails.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// JobID returns the unique identifier for the job.
func (c CreateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// Title returns the short human-readable job title.
func (c CreateJobCommand) Title() string {
	return c.title
}

// Origin returns the origin label.
func (c CreateJobCommand) Origin() string {
	return c.origin
}

// Destination returns the destination label.
func (c CreateJobCommand) Destination() string {
	return c.destination
}

// Pickup returns the pickup coordinates.
func (c CreateJobCommand) Pickup() kernel.GeoPoint {
	return c.pickup
}

// Drop returns the drop-off coordinates.
func (c CreateJobCommand) Drop() kernel.GeoPoint {
	return c.drop
}

// PayAmount returns the pay offered for the job.
func (c CreateJobCommand) PayAmount() float64 {
	return c.payAmount
}

// EquipmentType returns the required equipment type.
func (c CreateJobCommand) EquipmentType() string {
	return c.equipmentType
}

// EarliestStart returns the opening edge of the pickup window.
func (c CreateJobCommand) EarliestStart() time.Time {
	return c.earliestStart
}

// LatestStart returns the closing edge of the pickup window.
func (c CreateJobCommand) LatestStart() time.Time {
	return c.latestStart
}

func (c *CreateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CreateJobCommand) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}

	c.title = title
	return nil
}

func (c *CreateJobCommand) setRoute(origin string, destination string) error {
	if origin == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}

	c.origin = origin
	c.destination = destination
	return nil
}

func (c *CreateJobCommand) setPoints(pickup kernel.GeoPoint, drop kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), drop.Validate()); err != nil {
		return err
	}

	c.pickup = pickup
	c.drop = drop
	return nil
}

func (c *CreateJobCommand) setPayAmount(payAmount float64) error {
	if payAmount <= 0 {
		return errs.NewValueIsInvalidError("payAmount")
	}

	c.payAmount = payAmount
	return nil
}

func (c *CreateJobCommand) setEquipmentType(equipmentType string) error {
	if equipmentType == "" {
		return errs.NewValueIsRequiredError("equipmentType")
	}

	c.equipmentType = equipmentType
	return nil
}

func (c *CreateJobCommand) setWindow(earliest time.Time, latest time.Time) error {
	if earliest.IsZero() || latest.IsZero() {
		return errs.NewValueIsRequiredError("pickup window")
	}
	if latest.Before(earliest) {
		return errs.NewValueIsInvalidError("pickup window")
	}

	c.earliestStart = earliest
	c.latestStart = latest
	return nil
}
