package ports

import (
	"context"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"
)

// Notifier publishes job lifecycle events to interested parties.
// Delivery is best effort: command handlers log publish failures and proceed,
// so implementations must not be required for correctness.
type Notifier interface {
	// NotifyJobRequested announces that a carrier has claimed a job.
	NotifyJobRequested(ctx context.Context, aggregate *job.Job, carrierID kernel.UUID) error

	// NotifyStatusChanged announces a job status transition.
	NotifyStatusChanged(ctx context.Context, aggregate *job.Job, from job.Status) error
}
