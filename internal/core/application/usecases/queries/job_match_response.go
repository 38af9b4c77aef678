// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"sort"
	"strings"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/services"
)

// JobMatchResponse represents one scored job in the matching read model.
type JobMatchResponse struct {
	JobID         kernel.UUID
	Title         string
	Origin        string
	Destination   string
	PayAmount     float64
	EquipmentType string
	EarliestStart time.Time
	LatestStart   time.Time
	Score         int
	Factors       services.Factors
}

func toJobMatchResponse(scored services.ScoredJob) JobMatchResponse {
	j := scored.Job
	return JobMatchResponse{
		JobID:         j.ID(),
		Title:         j.Title(),
		Origin:        j.Origin(),
		Destination:   j.Destination(),
		PayAmount:     j.PayAmount(),
		EquipmentType: j.EquipmentType(),
		EarliestStart: j.EarliestStart(),
		LatestStart:   j.LatestStart(),
		Score:         scored.Score,
		Factors:       scored.Factors,
	}
}

// sortMatchesByScore orders matches by descending score, breaking score ties
// by ascending job ID. The tie-break keeps result pages stable across
// repeated requests over the same data.
func sortMatchesByScore(matches []JobMatchResponse) {
	sort.Slice(matches, func(i, k int) bool {
		if matches[i].Score != matches[k].Score {
			return matches[i].Score > matches[k].Score
		}
		return strings.Compare(matches[i].JobID.String(), matches[k].JobID.String()) < 0
	})
}
