package commands

import (
	"errors"

	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrBuildBackhaulsCommandIsNotConstructed = errors.New(
	"BuildBackhaulsCommand must be created via NewBuildBackhaulsCommand constructor",
)

// defaultBackhaulRadiusKm bounds the deadhead between an outbound drop and a
// return pickup when no radius is given.
const defaultBackhaulRadiusKm = 160

// BuildBackhaulsCommand triggers a sweep that pairs open jobs with return
// legs. The sweep is idempotent: jobs already paired are skipped, so
// re-running it only pairs jobs that gained a viable counterpart since the
// last run.
//
// Example:
//
//	cmd, err := NewBuildBackhaulsCommand(0) // 0 means the default radius
//	if err != nil {
//	    return err
//	}
//
//	handler := NewBuildBackhaulsCommandHandler(uowFactory, pairHandler, logger)
//	created, err := handler.Handle(ctx, cmd)
type BuildBackhaulsCommand struct { //nolint:recvcheck //using for validation
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewBuildBackhaulsCommand creates a command to run the pairing sweep.
// A radius of 0 selects the default of 160 km; negative radii are rejected.
func NewBuildBackhaulsCommand(radiusKm float64) (BuildBackhaulsCommand, error) {
	sweepCommand := BuildBackhaulsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := sweepCommand.setRadiusKm(radiusKm); err != nil {
		return BuildBackhaulsCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBuildBackhaulsCommandIsNotConstructed if validation fails.
func (c BuildBackhaulsCommand) Validate() error {
	return c.guard.Validate(ErrBuildBackhaulsCommandIsNotConstructed)
}

// RadiusKm returns the deadhead search radius in kilometers.
func (c BuildBackhaulsCommand) RadiusKm() float64 {
	return c.radiusKm
}

func (c *BuildBackhaulsCommand) setRadiusKm(radiusKm float64) error {
	if radiusKm < 0 {
		return errs.NewValueIsInvalidError("radiusKm")
	}
	if radiusKm == 0 {
		radiusKm = defaultBackhaulRadiusKm
	}

	c.radiusKm = radiusKm
	return nil
}
