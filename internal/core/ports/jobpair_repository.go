package ports

import (
	"context"

	"freightmatch/internal/core/domain/model/jobpair"
	"freightmatch/internal/core/domain/model/kernel"
)

// JobPairRepository defines the persistence contract for backhaul pair records.
// Pairs are write-once: there is no update method because a pair is never
// mutated after creation.
type JobPairRepository interface {
	// Add persists a new pair record to storage.
	Add(ctx context.Context, aggregate *jobpair.JobPair) error

	// Get retrieves a pair record by its unique identifier.
	// Returns *errs.ObjectNotFoundError when no such pair exists.
	Get(ctx context.Context, id kernel.UUID) (*jobpair.JobPair, error)

	// GetAll retrieves up to limit pair records ordered by creation time,
	// newest first.
	GetAll(ctx context.Context, limit int) ([]*jobpair.JobPair, error)
}
