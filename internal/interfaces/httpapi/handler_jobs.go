package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/typerliga/prediction-league/internal/usecase"
)

const jobDateLayout = "2006-01-02"

type syncFixturesRequest struct {
	LeagueExternalID int64  `json:"leagueExternalId" validate:"required,min=1"`
	SeasonStartYear  int    `json:"seasonStartYear" validate:"required,min=1900"`
	WindowStart      string `json:"windowStart" validate:"required"`
	WindowEnd        string `json:"windowEnd" validate:"required"`
	ReferenceDate    string `json:"referenceDate" validate:"required"`
}

type syncTeamsRequest struct {
	LeagueExternalID int64 `json:"leagueExternalId" validate:"required,min=1"`
	SeasonStartYear  int   `json:"seasonStartYear" validate:"required,min=1900"`
}

type jobCountResponse struct {
	Processed int `json:"processed"`
}

// RunFixtureSyncJob triggers one reconciliation run for a league season
// window. The reference date stands in for "today" in the time-split policy.
func (h *Handler) RunFixtureSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFixtureSyncJob")
	defer span.End()

	var req syncFixturesRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	windowStart, err := parseJobDate(req.WindowStart)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: windowStart: %v", usecase.ErrInvalidInput, err))
		return
	}
	windowEnd, err := parseJobDate(req.WindowEnd)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: windowEnd: %v", usecase.ErrInvalidInput, err))
		return
	}
	referenceDate, err := parseJobDate(req.ReferenceDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: referenceDate: %v", usecase.ErrInvalidInput, err))
		return
	}

	processed, err := h.syncService.SyncFixtures(ctx, usecase.SyncFixturesInput{
		LeagueExternalID: req.LeagueExternalID,
		SeasonStartYear:  req.SeasonStartYear,
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
		ReferenceDate:    referenceDate,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "fixture sync job failed",
			"league_external_id", req.LeagueExternalID,
			"season_start_year", req.SeasonStartYear,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobCountResponse{Processed: processed})
}

func (h *Handler) RunSeasonSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSeasonSyncJob")
	defer span.End()

	processed, err := h.syncService.SyncSeasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "season sync job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobCountResponse{Processed: processed})
}

func (h *Handler) RunTeamSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunTeamSyncJob")
	defer span.End()

	var req syncTeamsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	processed, err := h.syncService.SyncTeams(ctx, req.LeagueExternalID, req.SeasonStartYear)
	if err != nil {
		h.logger.ErrorContext(ctx, "team sync job failed",
			"league_external_id", req.LeagueExternalID,
			"season_start_year", req.SeasonStartYear,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobCountResponse{Processed: processed})
}

func (h *Handler) RunScoringBatchJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoringBatchJob")
	defer span.End()

	updated, err := h.scoringService.RunScoringBatch(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "scoring batch job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobCountResponse{Processed: updated})
}

func parseJobDate(raw string) (time.Time, error) {
	return time.Parse(jobDateLayout, raw)
}
