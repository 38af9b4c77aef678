// Package jobrepo provides data transfer objects and mapping functions for job persistence.
// This package implements the repository pattern for the job domain aggregate, handling
// the conversion between domain entities and database representations.
package jobrepo

import (
	"time"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting job aggregates.
// Maps job domain entities to relational database tables with indexes on the
// columns the matching queries filter by.
type JobDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Title         string      `gorm:"type:text"`
	Origin        string      `gorm:"type:text"`
	Destination   string      `gorm:"type:text"`
	Pickup        GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Drop          GeoPointDTO `gorm:"embedded;embeddedPrefix:drop_"`
	PayAmount     float64     `gorm:"type:numeric(12,2)"`
	EquipmentType string      `gorm:"type:text;index"`
	EarliestStart time.Time
	LatestStart   time.Time
	Status        int        `gorm:"index"`
	AssignedTo    *uuid.UUID `gorm:"type:uuid;index"`
	PairedJobID   *uuid.UUID `gorm:"type:uuid;index"`
	LockExpiresAt *time.Time
	RequestedAt   *time.Time
	AssignedAt    *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
}

// TableName specifies the database table name for job entities.
// Overrides GORM's default naming convention to use "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// GeoPointDTO represents embedded latitude/longitude coordinates within the job table.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision"`
	Lon float64 `gorm:"type:double precision"`
}

// fromDomain converts a job domain aggregate to its database representation.
func fromDomain(aggregate *job.Job) JobDTO {
	return JobDTO{
		ID:            aggregate.ID().Bytes(),
		Title:         aggregate.Title(),
		Origin:        aggregate.Origin(),
		Destination:   aggregate.Destination(),
		Pickup:        GeoPointDTO{Lat: aggregate.Pickup().Latitude(), Lon: aggregate.Pickup().Longitude()},
		Drop:          GeoPointDTO{Lat: aggregate.Drop().Latitude(), Lon: aggregate.Drop().Longitude()},
		PayAmount:     aggregate.PayAmount(),
		EquipmentType: aggregate.EquipmentType(),
		EarliestStart: aggregate.EarliestStart(),
		LatestStart:   aggregate.LatestStart(),
		Status:        int(aggregate.Status()),
		AssignedTo:    optionalUUID(aggregate.AssignedTo()),
		PairedJobID:   optionalUUID(aggregate.PairedJobID()),
		LockExpiresAt: aggregate.LockExpiresAt(),
		RequestedAt:   aggregate.RequestedAt(),
		AssignedAt:    aggregate.AssignedAt(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),
		PaidAt:        aggregate.PaidAt(),
		CreatedAt:     aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a job domain aggregate.
// Reconstructs the complete aggregate including status, assignment, pairing,
// lock, and audit timestamps using RestoreJob.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Lat, dto.Pickup.Lon)
	if err != nil {
		return nil, err
	}

	drop, err := kernel.NewGeoPoint(dto.Drop.Lat, dto.Drop.Lon)
	if err != nil {
		return nil, err
	}

	assignedTo, err := optionalKernelUUID(dto.AssignedTo)
	if err != nil {
		return nil, err
	}

	pairedJobID, err := optionalKernelUUID(dto.PairedJobID)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		id,
		dto.Title,
		dto.Origin,
		dto.Destination,
		pickup,
		drop,
		dto.PayAmount,
		dto.EquipmentType,
		dto.EarliestStart,
		dto.LatestStart,
		job.Status(dto.Status),
		assignedTo,
		pairedJobID,
		dto.LockExpiresAt,
		job.AuditTimestamps{
			RequestedAt: dto.RequestedAt,
			AssignedAt:  dto.AssignedAt,
			PickedUpAt:  dto.PickedUpAt,
			DeliveredAt: dto.DeliveredAt,
			PaidAt:      dto.PaidAt,
		},
		dto.CreatedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}

	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
