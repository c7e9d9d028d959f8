package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/typerliga/prediction-league/internal/domain/fixture"
	"github.com/typerliga/prediction-league/internal/domain/league"
	"github.com/typerliga/prediction-league/internal/platform/logging"
	"github.com/typerliga/prediction-league/internal/usecase"
)

type Handler struct {
	catalogService    *usecase.CatalogService
	groupService      *usecase.GroupService
	predictionService *usecase.PredictionService
	rankingService    *usecase.RankingService
	syncService       *usecase.SyncService
	scoringService    *usecase.ScoringService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	groupService *usecase.GroupService,
	predictionService *usecase.PredictionService,
	rankingService *usecase.RankingService,
	syncService *usecase.SyncService,
	scoringService *usecase.ScoringService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:    catalogService,
		groupService:      groupService,
		predictionService: predictionService,
		rankingService:    rankingService,
		syncService:       syncService,
		scoringService:    scoringService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.catalogService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSeasonFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonFixtures")
	defer span.End()

	seasonID, err := pathValueInt64(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var round *int
	if raw := strings.TrimSpace(r.URL.Query().Get("round")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: round must be an integer", usecase.ErrInvalidInput))
			return
		}
		round = &value
	}

	fixtures, err := h.catalogService.ListFixtures(ctx, seasonID, round)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathValueInt64(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(key))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

type leagueDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Country    string `json:"country"`
	Level      int    `json:"level"`
	ExternalID int64  `json:"externalId"`
}

type fixtureDTO struct {
	ID         int64  `json:"id"`
	SeasonID   int64  `json:"seasonId"`
	KickoffAt  string `json:"kickoffAt"`
	HomeTeamID int64  `json:"homeTeamId"`
	AwayTeamID int64  `json:"awayTeamId"`
	HomeScore  *int   `json:"homeScore"`
	AwayScore  *int   `json:"awayScore"`
	Status     string `json:"status"`
	Round      *int   `json:"round"`
	RoundName  string `json:"roundName"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:         v.ID,
		Name:       v.Name,
		Country:    v.Country,
		Level:      v.Level,
		ExternalID: v.ExternalID,
	}
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:         v.ID,
		SeasonID:   v.SeasonID,
		KickoffAt:  v.KickoffAt.Format(time.RFC3339),
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		Status:     v.Status,
		Round:      v.Round,
		RoundName:  v.RoundName,
	}
}
