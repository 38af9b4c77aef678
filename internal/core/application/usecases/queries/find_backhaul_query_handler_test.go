package queries_test

import (
	"testing"
	"time"

	"freightmatch/internal/core/application/usecases/queries"
	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func outboundToNashville(t *testing.T) *job.Job {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(33.7490, -84.3880)
	require.NoError(t, err)
	drop, err := kernel.NewGeoPoint(36.1627, -86.7816)
	require.NoError(t, err)

	earliest := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	j, err := job.NewJob(
		kernel.NewUUID(), "Outbound", "Atlanta, GA", "Nashville, TN",
		pickup, drop, 900, "box_truck", earliest, earliest.Add(6*time.Hour),
	)
	require.NoError(t, err)
	return j
}

func returnFromNashville(t *testing.T, pay float64) *job.Job {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(36.10, -86.70)
	require.NoError(t, err)
	drop, err := kernel.NewGeoPoint(33.7490, -84.3880)
	require.NoError(t, err)

	earliest := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
	j, err := job.NewJob(
		kernel.NewUUID(), "Return", "Nashville, TN", "Atlanta, GA",
		pickup, drop, pay, "box_truck", earliest, earliest.Add(6*time.Hour),
	)
	require.NoError(t, err)
	return j
}

func TestFindBackhaulQueryHandler_Handle(t *testing.T) {
	t.Run("returns_the_best_return_leg", func(t *testing.T) {
		outbound := outboundToNashville(t)
		lowPay := returnFromNashville(t, 300)
		highPay := returnFromNashville(t, 2500)

		repo := new(MockJobRepository)
		repo.On("Get", mock.Anything, outbound.ID()).Return(outbound, nil).Once()
		repo.On("GetOpenUnpairedInBox",
			mock.Anything, mock.Anything, outbound.LatestStart(), mock.AnythingOfType("int")).
			Return([]*job.Job{lowPay, highPay}, nil).Once()

		query, err := queries.NewFindBackhaulQuery(outbound.ID(), 0)
		require.NoError(t, err)
		require.InDelta(t, 160, query.RadiusKm(), 1e-9)

		h := queries.NewFindBackhaulQueryHandler(repo)
		result, err := h.Handle(t.Context(), query)
		require.NoError(t, err)
		require.NotNil(t, result)
		require.True(t, result.ReturnJobID.IsEqual(highPay.ID()))
		require.Greater(t, result.Score, 0)
		require.Greater(t, result.DeadheadMiles, 0.0)
	})

	t.Run("no_candidates_yields_nil_without_error", func(t *testing.T) {
		outbound := outboundToNashville(t)

		repo := new(MockJobRepository)
		repo.On("Get", mock.Anything, outbound.ID()).Return(outbound, nil).Once()
		repo.On("GetOpenUnpairedInBox",
			mock.Anything, mock.Anything, outbound.LatestStart(), mock.AnythingOfType("int")).
			Return([]*job.Job{}, nil).Once()

		query, _ := queries.NewFindBackhaulQuery(outbound.ID(), 0)
		h := queries.NewFindBackhaulQueryHandler(repo)

		result, err := h.Handle(t.Context(), query)
		require.NoError(t, err)
		require.Nil(t, result)
	})

	t.Run("unknown_outbound_job_propagates_not_found", func(t *testing.T) {
		missingID := kernel.NewUUID()

		repo := new(MockJobRepository)
		repo.On("Get", mock.Anything, missingID).
			Return(nil, errs.NewObjectNotFoundError("jobId", missingID.String())).Once()

		query, _ := queries.NewFindBackhaulQuery(missingID, 0)
		h := queries.NewFindBackhaulQueryHandler(repo)

		_, err := h.Handle(t.Context(), query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("negative_radius_is_rejected_at_construction", func(t *testing.T) {
		_, err := queries.NewFindBackhaulQuery(kernel.NewUUID(), -5)
		require.Error(t, err)
	})
}

func TestGetJobRecommendationsQueryHandler_Handle(t *testing.T) {
	carrierID := kernel.NewUUID()
	profile := atlantaProfile(t, carrierID)

	t.Run("pushes_equipment_and_pay_filters_to_the_store", func(t *testing.T) {
		local := openJobAt(t, 33.80, -84.40, 900, "box_truck")

		repo := new(MockJobRepository)
		repo.On("GetOpenFiltered", mock.Anything,
			mock.MatchedBy(func(filter ports.JobFilter) bool {
				return filter.EquipmentType == "box_truck" && filter.MinPay == 500
			}),
			mock.AnythingOfType("int")).
			Return([]*job.Job{local}, nil).Once()

		profiles := new(MockCarrierProfileProvider)
		profiles.On("GetProfile", mock.Anything, carrierID).Return(profile, nil).Once()

		query, err := queries.NewGetJobRecommendationsQuery(carrierID, "box_truck", 500, 0, 10)
		require.NoError(t, err)

		h := queries.NewGetJobRecommendationsQueryHandler(repo, profiles)
		matches, err := h.Handle(t.Context(), query)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		repo.AssertExpectations(t)
	})

	t.Run("max_distance_filters_in_memory", func(t *testing.T) {
		local := openJobAt(t, 33.80, -84.40, 900, "box_truck")   // a few km from home
		distant := openJobAt(t, 40.71, -74.00, 900, "box_truck") // ~1200 km away

		repo := new(MockJobRepository)
		repo.On("GetOpenFiltered", mock.Anything, mock.Anything, mock.AnythingOfType("int")).
			Return([]*job.Job{local, distant}, nil).Once()

		profiles := new(MockCarrierProfileProvider)
		profiles.On("GetProfile", mock.Anything, carrierID).Return(profile, nil).Once()

		query, _ := queries.NewGetJobRecommendationsQuery(carrierID, "", 0, 100, 10)
		h := queries.NewGetJobRecommendationsQueryHandler(repo, profiles)

		matches, err := h.Handle(t.Context(), query)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		require.True(t, matches[0].JobID.IsEqual(local.ID()))
	})
}

func TestGetBackhaulCandidatesQueryHandler_Handle(t *testing.T) {
	carrierID := kernel.NewUUID()
	profile := atlantaProfile(t, carrierID)

	t.Run("home_return_bonus_reorders_otherwise_equal_jobs", func(t *testing.T) {
		// Same pickup and pay; only the drop differs. The job dropping near
		// the carrier's Atlanta home collects the bonus and ranks first.
		pickup, err := kernel.NewGeoPoint(36.1627, -86.7816)
		require.NoError(t, err)
		homeDrop, err := kernel.NewGeoPoint(33.80, -84.40)
		require.NoError(t, err)
		awayDrop, err := kernel.NewGeoPoint(41.88, -87.63)
		require.NoError(t, err)

		earliest := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
		towardHome, err := job.NewJob(
			kernel.NewUUID(), "Homebound", "Nashville, TN", "Atlanta, GA",
			pickup, homeDrop, 700, "box_truck", earliest, earliest.Add(6*time.Hour),
		)
		require.NoError(t, err)
		awayFromHome, err := job.NewJob(
			kernel.NewUUID(), "Northbound", "Nashville, TN", "Chicago, IL",
			pickup, awayDrop, 700, "box_truck", earliest, earliest.Add(6*time.Hour),
		)
		require.NoError(t, err)

		repo := new(MockJobRepository)
		repo.On("GetAllOpenUnpaired", mock.Anything, 50).
			Return([]*job.Job{awayFromHome, towardHome}, nil).Once()

		profiles := new(MockCarrierProfileProvider)
		profiles.On("GetProfile", mock.Anything, carrierID).Return(profile, nil).Once()

		query, err := queries.NewGetBackhaulCandidatesQuery(carrierID)
		require.NoError(t, err)

		h := queries.NewGetBackhaulCandidatesQueryHandler(repo, profiles)
		matches, err := h.Handle(t.Context(), query)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		require.True(t, matches[0].JobID.IsEqual(towardHome.ID()))
		require.Equal(t, matches[1].Score+50, matches[0].Score)
	})
}
