// Package http exposes the job lifecycle and matching operations over REST.
// Handlers translate between the wire format and the application's commands
// and queries; domain errors map onto HTTP status codes in one place.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/application/usecases/queries"
	"freightmatch/internal/core/domain/model/job"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewJobRequest is the body of POST /api/v1/jobs.
type NewJobRequest struct {
	Title         string    `json:"title"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	PickupLat     float64   `json:"pickupLat"`
	PickupLon     float64   `json:"pickupLon"`
	DropLat       float64   `json:"dropLat"`
	DropLon       float64   `json:"dropLon"`
	PayAmount     float64   `json:"payAmount"`
	EquipmentType string    `json:"equipmentType"`
	EarliestStart time.Time `json:"earliestStart"`
	LatestStart   time.Time `json:"latestStart"`
}

// AcceptJobRequest is the body of POST /api/v1/jobs/:jobId/accept.
type AcceptJobRequest struct {
	CarrierID string `json:"carrierId"`
}

// UpdateStatusRequest is the body of PATCH /api/v1/jobs/:jobId/status.
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	ActorID   string `json:"actorId"`
	ActorRole string `json:"actorRole"`
}

// JobMatch is one ranked entry in matching and recommendation responses.
type JobMatch struct {
	JobID         string       `json:"jobId"`
	Title         string       `json:"title"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	PayAmount     float64      `json:"payAmount"`
	EquipmentType string       `json:"equipmentType"`
	EarliestStart time.Time    `json:"earliestStart"`
	LatestStart   time.Time    `json:"latestStart"`
	Score         int          `json:"score"`
	Factors       MatchFactors `json:"factors"`
}

// MatchFactors breaks a match score down by component.
type MatchFactors struct {
	Distance  float64 `json:"distance"`
	Pay       float64 `json:"pay"`
	Equipment float64 `json:"equipment"`
	Level     float64 `json:"level"`
}

// BackhaulMatch is the body of a successful backhaul search.
type BackhaulMatch struct {
	ReturnJobID   string    `json:"returnJobId"`
	Title         string    `json:"title"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	PayAmount     float64   `json:"payAmount"`
	EquipmentType string    `json:"equipmentType"`
	EarliestStart time.Time `json:"earliestStart"`
	DeadheadMiles float64   `json:"deadheadMiles"`
	Score         int       `json:"score"`
}

// PairedLeg describes one leg of a recorded pair.
type PairedLeg struct {
	JobID       string  `json:"jobId"`
	Title       string  `json:"title"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	PayAmount   float64 `json:"payAmount"`
	Status      string  `json:"status"`
}

// JobPair is one entry of the pair ledger listing.
type JobPair struct {
	PairID        string    `json:"pairId"`
	Score         int       `json:"score"`
	DeadheadMiles float64   `json:"deadheadMiles"`
	TotalPay      float64   `json:"totalPay"`
	CreatedAt     time.Time `json:"createdAt"`
	Outbound      PairedLeg `json:"outbound"`
	Return        PairedLeg `json:"return"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createJobHandler       commands.CreateJobCommandHandler
	requestJobHandler      commands.RequestJobCommandHandler
	updateJobStatusHandler commands.UpdateJobStatusCommandHandler
	buildBackhaulsHandler  commands.BuildBackhaulsCommandHandler

	// Query handlers
	matchesHandler         queries.GetPersonalizedMatchesQueryHandler
	recommendationsHandler queries.GetJobRecommendationsQueryHandler
	backhaulsHandler       queries.GetBackhaulCandidatesQueryHandler
	findBackhaulHandler    queries.FindBackhaulQueryHandler
	pairedJobsHandler      queries.GetPairedJobsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createJobHandler commands.CreateJobCommandHandler,
	requestJobHandler commands.RequestJobCommandHandler,
	updateJobStatusHandler commands.UpdateJobStatusCommandHandler,
	buildBackhaulsHandler commands.BuildBackhaulsCommandHandler,
	matchesHandler queries.GetPersonalizedMatchesQueryHandler,
	recommendationsHandler queries.GetJobRecommendationsQueryHandler,
	backhaulsHandler queries.GetBackhaulCandidatesQueryHandler,
	findBackhaulHandler queries.FindBackhaulQueryHandler,
	pairedJobsHandler queries.GetPairedJobsQueryHandler,
) *Server {
	return &Server{
		createJobHandler:       createJobHandler,
		requestJobHandler:      requestJobHandler,
		updateJobStatusHandler: updateJobStatusHandler,
		buildBackhaulsHandler:  buildBackhaulsHandler,
		matchesHandler:         matchesHandler,
		recommendationsHandler: recommendationsHandler,
		backhaulsHandler:       backhaulsHandler,
		findBackhaulHandler:    findBackhaulHandler,
		pairedJobsHandler:      pairedJobsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/jobs", s.CreateJob)
	api.POST("/jobs/:jobId/accept", s.AcceptJob)
	api.PATCH("/jobs/:jobId/status", s.UpdateJobStatus)
	api.GET("/jobs/:jobId/backhaul", s.FindBackhaul)
	api.GET("/carriers/:carrierId/matches", s.GetMatches)
	api.GET("/carriers/:carrierId/recommendations", s.GetRecommendations)
	api.GET("/carriers/:carrierId/backhauls", s.GetBackhaulCandidates)
	api.POST("/admin/backhauls/build", s.BuildBackhauls)
	api.GET("/admin/backhauls/pairs", s.GetPairedJobs)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateJob handles POST /api/v1/jobs - posts a new job.
func (s *Server) CreateJob(ctx echo.Context) error {
	var request NewJobRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickup, err := kernel.NewGeoPoint(request.PickupLat, request.PickupLon)
	if err != nil {
		return badRequest(ctx, "Invalid pickup coordinates: "+err.Error())
	}
	drop, err := kernel.NewGeoPoint(request.DropLat, request.DropLon)
	if err != nil {
		return badRequest(ctx, "Invalid drop coordinates: "+err.Error())
	}

	jobID := kernel.NewUUID()
	cmd, err := commands.NewCreateJobCommand(
		jobID,
		request.Title,
		request.Origin,
		request.Destination,
		pickup,
		drop,
		request.PayAmount,
		request.EquipmentType,
		request.EarliestStart,
		request.LatestStart,
	)
	if err != nil {
		return badRequest(ctx, "Invalid job data: "+err.Error())
	}

	if handleErr := s.createJobHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to create job")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": jobID.String()})
}

// AcceptJob handles POST /api/v1/jobs/:jobId/accept - claims an open job for a carrier.
func (s *Server) AcceptJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("jobId"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var request AcceptJobRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	carrierID, err := kernel.UUIDFromString(request.CarrierID)
	if err != nil {
		return badRequest(ctx, "Invalid carrier id")
	}

	cmd, err := commands.NewRequestJobCommand(jobID, carrierID)
	if err != nil {
		return badRequest(ctx, "Invalid claim data: "+err.Error())
	}

	if handleErr := s.requestJobHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to claim job")
	}

	return ctx.NoContent(http.StatusOK)
}

// UpdateJobStatus handles PATCH /api/v1/jobs/:jobId/status - advances a job's lifecycle.
func (s *Server) UpdateJobStatus(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("jobId"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	newStatus, err := job.ParseStatus(request.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+request.Status)
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id")
	}

	actorRole, err := commands.ParseRole(request.ActorRole)
	if err != nil {
		return badRequest(ctx, "Unknown role: "+request.ActorRole)
	}

	cmd, err := commands.NewUpdateJobStatusCommand(jobID, newStatus, actorID, actorRole)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if handleErr := s.updateJobStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr, "Failed to update job status")
	}

	return ctx.NoContent(http.StatusOK)
}

// GetMatches handles GET /api/v1/carriers/:carrierId/matches - ranked open jobs.
func (s *Server) GetMatches(ctx echo.Context) error {
	carrierID, err := kernel.UUIDFromString(ctx.Param("carrierId"))
	if err != nil {
		return badRequest(ctx, "Invalid carrier id")
	}

	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetPersonalizedMatchesQuery(carrierID, limit)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	matches, err := s.matchesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve matches")
	}

	return ctx.JSON(http.StatusOK, toJobMatches(matches))
}

// GetRecommendations handles GET /api/v1/carriers/:carrierId/recommendations -
// ranked open jobs narrowed by equipment, pay and distance criteria.
func (s *Server) GetRecommendations(ctx echo.Context) error {
	carrierID, err := kernel.UUIDFromString(ctx.Param("carrierId"))
	if err != nil {
		return badRequest(ctx, "Invalid carrier id")
	}

	minPay, err := floatQueryParam(ctx, "minPay")
	if err != nil {
		return badRequest(ctx, "Invalid minPay")
	}
	maxDistanceKm, err := floatQueryParam(ctx, "maxDistanceKm")
	if err != nil {
		return badRequest(ctx, "Invalid maxDistanceKm")
	}
	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetJobRecommendationsQuery(
		carrierID,
		ctx.QueryParam("equipmentType"),
		minPay,
		maxDistanceKm,
		limit,
	)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	matches, err := s.recommendationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve recommendations")
	}

	return ctx.JSON(http.StatusOK, toJobMatches(matches))
}

// GetBackhaulCandidates handles GET /api/v1/carriers/:carrierId/backhauls -
// open jobs ranked with the home-return bonus applied.
func (s *Server) GetBackhaulCandidates(ctx echo.Context) error {
	carrierID, err := kernel.UUIDFromString(ctx.Param("carrierId"))
	if err != nil {
		return badRequest(ctx, "Invalid carrier id")
	}

	query, err := queries.NewGetBackhaulCandidatesQuery(carrierID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	matches, err := s.backhaulsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve backhaul candidates")
	}

	return ctx.JSON(http.StatusOK, toJobMatches(matches))
}

// FindBackhaul handles GET /api/v1/jobs/:jobId/backhaul - best return leg for
// an outbound job. Responds 204 when no candidate qualifies.
func (s *Server) FindBackhaul(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("jobId"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	radiusKm, err := floatQueryParam(ctx, "radiusKm")
	if err != nil {
		return badRequest(ctx, "Invalid radiusKm")
	}

	query, err := queries.NewFindBackhaulQuery(jobID, radiusKm)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	candidate, err := s.findBackhaulHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to search for a backhaul")
	}
	if candidate == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	return ctx.JSON(http.StatusOK, BackhaulMatch{
		ReturnJobID:   candidate.ReturnJobID.String(),
		Title:         candidate.Title,
		Origin:        candidate.Origin,
		Destination:   candidate.Destination,
		PayAmount:     candidate.PayAmount,
		EquipmentType: candidate.EquipmentType,
		EarliestStart: candidate.EarliestStart,
		DeadheadMiles: candidate.DeadheadMiles,
		Score:         candidate.Score,
	})
}

// BuildBackhauls handles POST /api/v1/admin/backhauls/build - runs the pairing sweep.
func (s *Server) BuildBackhauls(ctx echo.Context) error {
	radiusKm, err := floatQueryParam(ctx, "radiusKm")
	if err != nil {
		return badRequest(ctx, "Invalid radiusKm")
	}

	cmd, err := commands.NewBuildBackhaulsCommand(radiusKm)
	if err != nil {
		return badRequest(ctx, "Invalid sweep data: "+err.Error())
	}

	created, err := s.buildBackhaulsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to build backhaul pairs")
	}

	return ctx.JSON(http.StatusOK, map[string]int{"pairsCreated": created})
}

// GetPairedJobs handles GET /api/v1/admin/backhauls/pairs - lists the pair ledger.
func (s *Server) GetPairedJobs(ctx echo.Context) error {
	limit, err := intQueryParam(ctx, "limit")
	if err != nil {
		return badRequest(ctx, "Invalid limit")
	}

	query, err := queries.NewGetPairedJobsQuery(limit)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	pairs, err := s.pairedJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve pairs")
	}

	response := make([]JobPair, len(pairs))
	for i, pair := range pairs {
		response[i] = JobPair{
			PairID:        pair.PairID.String(),
			Score:         pair.Score,
			DeadheadMiles: pair.DeadheadMiles,
			TotalPay:      pair.TotalPay,
			CreatedAt:     pair.CreatedAt,
			Outbound:      toPairedLeg(pair.Outbound),
			Return:        toPairedLeg(pair.Return),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toPairedLeg(leg queries.PairedLegResponse) PairedLeg {
	return PairedLeg{
		JobID:       leg.JobID.String(),
		Title:       leg.Title,
		Origin:      leg.Origin,
		Destination: leg.Destination,
		PayAmount:   leg.PayAmount,
		Status:      leg.Status,
	}
}

func toJobMatches(matches []queries.JobMatchResponse) []JobMatch {
	response := make([]JobMatch, len(matches))
	for i, match := range matches {
		response[i] = JobMatch{
			JobID:         match.JobID.String(),
			Title:         match.Title,
			Origin:        match.Origin,
			Destination:   match.Destination,
			PayAmount:     match.PayAmount,
			EquipmentType: match.EquipmentType,
			EarliestStart: match.EarliestStart,
			LatestStart:   match.LatestStart,
			Score:         match.Score,
			Factors: MatchFactors{
				Distance:  match.Factors.Distance,
				Pay:       match.Factors.Pay,
				Equipment: match.Factors.Equipment,
				Level:     match.Factors.Level,
			},
		}
	}
	return response
}

// intQueryParam parses an optional integer query parameter; absent means 0.
func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// floatQueryParam parses an optional float query parameter; absent means 0.
func floatQueryParam(ctx echo.Context, name string) (float64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps expected domain failures onto their HTTP status codes.
// Anything unrecognized is an internal error with the fallback message.
func domainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, job.ErrJobLocked):
		return ctx.JSON(http.StatusLocked, Error{
			Code:    http.StatusLocked,
			Message: err.Error(),
		})
	case errors.Is(err, job.ErrPermissionDenied):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, job.ErrInvalidJobState),
		errors.Is(err, job.ErrInvalidStateTransition),
		errors.Is(err, job.ErrJobAlreadyPaired):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
