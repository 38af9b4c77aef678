package queries

import (
	"context"

	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPairedJobsQueryHandler retrieves the pair ledger from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern: the
// ledger row and both legs come back in a single join, newest pairs first.
type GetPairedJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetPairedJobsQueryHandler creates a handler for pair ledger queries.
// Requires a GORM database connection for query execution.
func NewGetPairedJobsQueryHandler(db *gorm.DB) GetPairedJobsQueryHandler {
	return GetPairedJobsQueryHandler{db: db}
}

// Handle executes the query to retrieve ledger entries with both legs' details.
func (h GetPairedJobsQueryHandler) Handle(
	ctx context.Context,
	query GetPairedJobsQuery,
) ([]GetPairedJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pairs := make([]GetPairedJobsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.score,
			p.deadhead_miles,
			p.total_pay,
			p.created_at,
			o.id, o.title, o.origin, o.destination, o.pay_amount, o.status,
			r.id, r.title, r.origin, r.destination, r.pay_amount, r.status
		FROM job_pairs p
		JOIN jobs o ON o.id = p.outbound_job_id
		JOIN jobs r ON r.id = p.return_job_id
		ORDER BY p.created_at DESC, p.id
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pair GetPairedJobsQueryResponse
		var pairID, outboundID, returnID uuid.UUID
		var outboundStatus, returnStatus int

		err = rows.Scan(
			&pairID,
			&pair.Score,
			&pair.DeadheadMiles,
			&pair.TotalPay,
			&pair.CreatedAt,
			&outboundID,
			&pair.Outbound.Title,
			&pair.Outbound.Origin,
			&pair.Outbound.Destination,
			&pair.Outbound.PayAmount,
			&outboundStatus,
			&returnID,
			&pair.Return.Title,
			&pair.Return.Origin,
			&pair.Return.Destination,
			&pair.Return.PayAmount,
			&returnStatus,
		)
		if err != nil {
			return nil, err
		}

		pair.Outbound.Status = job.Status(outboundStatus).String()
		pair.Return.Status = job.Status(returnStatus).String()

		if pair.PairID, err = kernel.UUIDFromBytes(pairID[:]); err != nil {
			return nil, err
		}
		if pair.Outbound.JobID, err = kernel.UUIDFromBytes(outboundID[:]); err != nil {
			return nil, err
		}
		if pair.Return.JobID, err = kernel.UUIDFromBytes(returnID[:]); err != nil {
			return nil, err
		}

		pairs = append(pairs, pair)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}
