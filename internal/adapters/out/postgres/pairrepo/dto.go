// Package pairrepo provides data transfer objects and mapping functions for
// backhaul pair persistence. Pair records are write-once ledger entries.
package pairrepo

import (
	"time"

	"freightmatch/internal/core/domain/model/jobpair"
	"freightmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobPairDTO represents the database structure for persisting pair records.
type JobPairDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OutboundJobID uuid.UUID `gorm:"type:uuid;index"`
	ReturnJobID   uuid.UUID `gorm:"type:uuid;index"`
	Score         int
	DeadheadMiles float64 `gorm:"type:double precision"`
	TotalPay      float64 `gorm:"type:numeric(12,2)"`
	CreatedAt     time.Time
}

// TableName specifies the database table name for pair records.
// Overrides GORM's default naming convention to use "job_pairs".
func (JobPairDTO) TableName() string {
	return "job_pairs"
}

// fromDomain converts a pair record to its database representation.
func fromDomain(pair *jobpair.JobPair) JobPairDTO {
	return JobPairDTO{
		ID:            pair.ID().Bytes(),
		OutboundJobID: pair.OutboundID().Bytes(),
		ReturnJobID:   pair.ReturnID().Bytes(),
		Score:         pair.Score(),
		DeadheadMiles: pair.DeadheadMiles(),
		TotalPay:      pair.TotalPay(),
		CreatedAt:     pair.CreatedAt(),
	}
}

// toDomain converts a database DTO to a pair record.
func toDomain(dto JobPairDTO) (*jobpair.JobPair, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	outboundID, err := kernel.UUIDFromBytes(dto.OutboundJobID[:])
	if err != nil {
		return nil, err
	}

	returnID, err := kernel.UUIDFromBytes(dto.ReturnJobID[:])
	if err != nil {
		return nil, err
	}

	return jobpair.NewJobPair(
		id,
		outboundID,
		returnID,
		dto.Score,
		dto.DeadheadMiles,
		dto.TotalPay,
		dto.CreatedAt,
	)
}
