package jobs

import (
	"context"
	"log/slog"

	"freightmatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the pairing sweep every five minutes.
const DefaultSweepSchedule = "0 */5 * * * *"

// BackhaulSweepJob manages the scheduled backhaul pairing sweep.
// Each run scans open unpaired jobs and records the pairs it can form.
type BackhaulSweepJob struct {
	handler  commands.BuildBackhaulsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBackhaulSweepJob creates a new sweep job with the given cron schedule.
// An empty schedule selects DefaultSweepSchedule.
func NewBackhaulSweepJob(
	handler commands.BuildBackhaulsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *BackhaulSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	return &BackhaulSweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "backhaul_sweep_job"),
	}
}

// Start begins the backhaul sweep on its schedule.
func (j *BackhaulSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewBuildBackhaulsCommand(0)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Backhaul sweep command construction failed", "error", cmdErr)
			return
		}

		created, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Backhaul sweep failed", "error", handleErr)
			return
		}

		// A sweep that finds nothing to pair is a normal outcome
		if created > 0 {
			j.logger.InfoContext(ctx, "Backhaul sweep completed", "pairsCreated", created)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backhaul sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the backhaul sweep job.
func (j *BackhaulSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backhaul sweep job stopped")
}
