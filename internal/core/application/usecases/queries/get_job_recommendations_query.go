package queries

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

var ErrGetJobRecommendationsQueryIsNotConstructed = errors.New(
	"GetJobRecommendationsQuery must be created via NewGetJobRecommendationsQuery constructor",
)

// GetJobRecommendationsQuery retrieves jobs matching a carrier's hard
// requirements, ranked by the same scoring as personalized matches.
// Equipment type and minimum pay filter candidates in the store; the maximum
// distance filter is applied after scoring because it depends on the
// carrier's home coordinates.
//
// Example:
//
//	query, err := NewGetJobRecommendationsQuery(carrierID, "box_truck", 500, 150, 10)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetJobRecommendationsQueryHandler(jobRepo, profiles)
//	recommendations, err := handler.Handle(ctx, query)
type GetJobRecommendationsQuery struct { //nolint:recvcheck //using for validation
	carrierID     kernel.UUID
	equipmentType string
	minPay        float64
	maxDistanceKm float64
	limit         int

	guard guard.ConstructorGuard
}

// NewGetJobRecommendationsQuery creates a filtered recommendation query.
// Zero values for equipmentType, minPay, and maxDistanceKm disable the
// corresponding filter. A limit of 0 selects the default page size.
func NewGetJobRecommendationsQuery(
	carrierID kernel.UUID,
	equipmentType string,
	minPay float64,
	maxDistanceKm float64,
	limit int,
) (GetJobRecommendationsQuery, error) {
	recQuery := GetJobRecommendationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		recQuery.setCarrierID(carrierID),
		recQuery.setFilters(equipmentType, minPay, maxDistanceKm),
		recQuery.setLimit(limit),
	); err != nil {
		return GetJobRecommendationsQuery{}, err
	}

	return recQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetJobRecommendationsQueryIsNotConstructed if validation fails.
func (q GetJobRecommendationsQuery) Validate() error {
	return q.guard.Validate(ErrGetJobRecommendationsQueryIsNotConstructed)
}

// CarrierID returns the carrier the recommendations are ranked for.
func (q GetJobRecommendationsQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

// EquipmentType returns the required equipment filter, empty for none.
func (q GetJobRecommendationsQuery) EquipmentType() string {
	return q.equipmentType
}

// MinPay returns the minimum pay filter, 0 for none.
func (q GetJobRecommendationsQuery) MinPay() float64 {
	return q.minPay
}

// MaxDistanceKm returns the maximum home-to-pickup distance, 0 for none.
func (q GetJobRecommendationsQuery) MaxDistanceKm() float64 {
	return q.maxDistanceKm
}

// Limit returns the maximum number of recommendations to return.
func (q GetJobRecommendationsQuery) Limit() int {
	return q.limit
}

func (q *GetJobRecommendationsQuery) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	q.carrierID = carrierID
	return nil
}

func (q *GetJobRecommendationsQuery) setFilters(
	equipmentType string,
	minPay float64,
	maxDistanceKm float64,
) error {
	if minPay < 0 {
		return errs.NewValueIsInvalidError("minPay")
	}
	if maxDistanceKm < 0 {
		return errs.NewValueIsInvalidError("maxDistanceKm")
	}

	q.equipmentType = equipmentType
	q.minPay = minPay
	q.maxDistanceKm = maxDistanceKm
	return nil
}

func (q *GetJobRecommendationsQuery) setLimit(limit int) error {
	if limit < 0 {
		return errs.NewValueIsInvalidError("limit")
	}
	if limit == 0 {
		limit = defaultMatchLimit
	}

	q.limit = limit
	return nil
}
