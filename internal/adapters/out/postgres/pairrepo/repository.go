package pairrepo

import (
	"context"
	"errors"

	"freightmatch/internal/core/domain/model/jobpair"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobPairRepository implements JobPairRepository using GORM.
// There is no update method: the ledger is append-only.
type GormJobPairRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobPairRepository creates a new GORM pair repository.
func NewGormJobPairRepository(db *gorm.DB, tracker aggregateTracker) *GormJobPairRepository {
	return &GormJobPairRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pair record to the database.
func (r *GormJobPairRepository) Add(ctx context.Context, aggregate *jobpair.JobPair) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a pair record by ID.
func (r *GormJobPairRepository) Get(ctx context.Context, id kernel.UUID) (*jobpair.JobPair, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobPairDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("jobPair", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves up to limit pair records, newest first.
func (r *GormJobPairRepository) GetAll(ctx context.Context, limit int) ([]*jobpair.JobPair, error) {
	var dtos []JobPairDTO
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	pairs := make([]*jobpair.JobPair, 0, len(dtos))
	for _, dto := range dtos {
		pair, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		pairs = append(pairs, pair)
	}

	return pairs, nil
}
