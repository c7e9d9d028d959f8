package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/typerliga/prediction-league/internal/domain/prediction"
	"github.com/typerliga/prediction-league/internal/usecase"
)

type createPredictionRequest struct {
	GroupID       int64 `json:"groupId" validate:"required,min=1"`
	FixtureID     int64 `json:"fixtureId" validate:"required,min=1"`
	PredictedHome int   `json:"predictedHome" validate:"min=0,max=99"`
	PredictedAway int   `json:"predictedAway" validate:"min=0,max=99"`
}

type updatePredictionRequest struct {
	PredictedHome int `json:"predictedHome" validate:"min=0,max=99"`
	PredictedAway int `json:"predictedAway" validate:"min=0,max=99"`
}

type predictionDTO struct {
	ID            int64  `json:"id"`
	GroupID       int64  `json:"groupId"`
	FixtureID     int64  `json:"fixtureId"`
	PredictedHome int    `json:"predictedHome"`
	PredictedAway int    `json:"predictedAway"`
	PointsAwarded *int   `json:"pointsAwarded"`
	CreatedAt     string `json:"createdAt"`
}

func (h *Handler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePrediction")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user identity is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createPredictionRequest
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

	item, err := h.predictionService.Create(ctx, usecase.CreatePredictionInput{
		UserID:        userID,
		GroupID:       req.GroupID,
		FixtureID:     req.FixtureID,
		PredictedHome: req.PredictedHome,
		PredictedAway: req.PredictedAway,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create prediction failed",
			"user_id", userID,
			"group_id", req.GroupID,
			"fixture_id", req.FixtureID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(item))
}

func (h *Handler) UpdatePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePrediction")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user identity is missing from request context", usecase.ErrUnauthorized))
		return
	}

	predictionID, err := pathValueInt64(r, "predictionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updatePredictionRequest
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

	if err := h.predictionService.Update(ctx, usecase.UpdatePredictionInput{
		UserID:        userID,
		PredictionID:  predictionID,
		PredictedHome: req.PredictedHome,
		PredictedAway: req.PredictedAway,
	}); err != nil {
		h.logger.WarnContext(ctx, "update prediction failed",
			"user_id", userID,
			"prediction_id", predictionID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) ListMyPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPredictions")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user identity is missing from request context", usecase.ErrUnauthorized))
		return
	}

	groupID, err := pathValueInt64(r, "groupID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.predictionService.ListMine(ctx, groupID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "user_id", userID, "group_id", groupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]predictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, predictionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func predictionToDTO(v prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:            v.ID,
		GroupID:       v.GroupID,
		FixtureID:     v.FixtureID,
		PredictedHome: v.PredictedHome,
		PredictedAway: v.PredictedAway,
		PointsAwarded: v.PointsAwarded,
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
