package jobrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new job to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
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

// Update saves an existing job to the database.
// All columns are written, including ones that became NULL (a cleared lock).
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus saves an existing job only if its stored status still equals
// expectedStatus and its stored pairing still equals expectedPair (nil means
// unpaired). Both predicates ride on the UPDATE itself, so concurrent
// transitions out of the same status, and pairings committed after the
// caller's read, serialize on the row: exactly one statement matches, the
// rest see zero affected rows and get job.ErrInvalidJobState. Without the
// pairing predicate a stale full-row write would silently reset
// paired_job_id to the writer's snapshot.
func (r *GormJobRepository) UpdateIfStatus(
	ctx context.Context,
	aggregate *job.Job,
	expectedStatus job.Status,
	expectedPair *kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ? AND status = ? AND paired_job_id IS NOT DISTINCT FROM ?",
			dto.ID, int(expectedStatus), optionalUUID(expectedPair)).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: job %s is no longer %s with its pairing unchanged",
			job.ErrInvalidJobState, aggregate.ID(), expectedStatus)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenFiltered retrieves up to limit open, unpaired jobs satisfying the
// filter, ordered by ID. Empty filter fields impose no constraint.
func (r *GormJobRepository) GetOpenFiltered(
	ctx context.Context,
	filter ports.JobFilter,
	limit int,
) ([]*job.Job, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND paired_job_id IS NULL", int(job.Open))
	if filter.EquipmentType != "" {
		query = query.Where("equipment_type = ?", filter.EquipmentType)
	}
	if filter.MinPay > 0 {
		query = query.Where("pay_amount >= ?", filter.MinPay)
	}

	var dtos []JobDTO
	if err := query.Order("id").Limit(limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllOpenUnpaired retrieves up to limit open, unpaired jobs ordered by ID.
func (r *GormJobRepository) GetAllOpenUnpaired(ctx context.Context, limit int) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND paired_job_id IS NULL", int(job.Open)).
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetOpenUnpairedInBox retrieves up to limit open, unpaired jobs whose pickup
// lies inside the bounding box and whose earliest start is not before
// startsAfter, ordered by ID.
func (r *GormJobRepository) GetOpenUnpairedInBox(
	ctx context.Context,
	box kernel.BoundingBox,
	startsAfter time.Time,
	limit int,
) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND paired_job_id IS NULL", int(job.Open)).
		Where("pickup_lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("pickup_lon BETWEEN ? AND ?", box.MinLon, box.MaxLon).
		Where("earliest_start >= ?", startsAfter).
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []JobDTO) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, aggregate)
	}

	return jobs, nil
}
