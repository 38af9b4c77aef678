// Package ports defines repository and outbound interfaces for the freight domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"
)

// JobFilter narrows open-job queries by hard requirements.
// Zero values mean "no constraint" for that field.
type JobFilter struct {
	// EquipmentType, when non-empty, restricts results to jobs requiring
	// exactly this equipment type.
	EquipmentType string

	// MinPay, when positive, restricts results to jobs paying at least
	// this amount.
	MinPay float64
}

// JobRepository defines the persistence contract for job aggregates.
// Provides methods for storing, retrieving, and querying job entities
// based on their status, pairing, and location.
//
// All multi-row queries return results ordered by ascending job ID so that
// repeated calls over the same data produce the same ordering. Score-based
// ranking on top of that order is the caller's concern.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	// The job must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate.
	// The job must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *job.Job) error

	// UpdateIfStatus persists changes to an existing job aggregate only if
	// the stored row is still in the expected status and still carries the
	// expected pairing link, where a nil expectedPair means unpaired. The
	// write is a single conditional statement, so two concurrent transitions
	// from the same status cannot both succeed, and a pairing committed
	// between the caller's read and its write fails the write instead of
	// being overwritten by the stale snapshot.
	//
	// Callers capture both guard values from the aggregate before mutating
	// it. Returns job.ErrInvalidJobState when the row no longer matches,
	// which callers treat as a lost race.
	UpdateIfStatus(
		ctx context.Context,
		aggregate *job.Job,
		expectedStatus job.Status,
		expectedPair *kernel.UUID,
	) error

	// Get retrieves a job aggregate by its unique identifier.
	// Returns *errs.ObjectNotFoundError when no such job exists.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetOpenFiltered retrieves up to limit open, unpaired jobs satisfying
	// the filter. Filtering happens in the query, not in memory.
	GetOpenFiltered(ctx context.Context, filter JobFilter, limit int) ([]*job.Job, error)

	// GetAllOpenUnpaired retrieves up to limit open jobs that are not part
	// of a backhaul pair. Used by the pairing sweep to pick outbound legs.
	GetAllOpenUnpaired(ctx context.Context, limit int) ([]*job.Job, error)

	// GetOpenUnpairedInBox retrieves up to limit open, unpaired jobs whose
	// pickup point lies inside the bounding box and whose earliest start is
	// not before startsAfter. The box is a coarse pre-filter; callers apply
	// the exact distance check themselves.
	GetOpenUnpairedInBox(
		ctx context.Context,
		box kernel.BoundingBox,
		startsAfter time.Time,
		limit int,
	) ([]*job.Job, error)
}
