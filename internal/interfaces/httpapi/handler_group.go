package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/typerliga/prediction-league/internal/domain/usergroup"
	"github.com/typerliga/prediction-league/internal/usecase"
)

type createGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	SeasonID    *int64 `json:"seasonId"`
	StartRound  *int   `json:"startRound" validate:"omitempty,min=1"`
	EndRound    *int   `json:"endRound" validate:"omitempty,min=1"`
}

type joinGroupRequest struct {
	AccessCode string `json:"accessCode" validate:"required,min=4,max=16"`
}

type groupDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AccessCode  string `json:"accessCode"`
	Description string `json:"description"`
	SeasonID    *int64 `json:"seasonId"`
	AdminUserID string `json:"adminUserId,omitempty"`
	StartRound  *int   `json:"startRound"`
	EndRound    *int   `json:"endRound"`
	CreatedAt   string `json:"createdAt"`
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGroup")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user identity is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createGroupRequest
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

	group, err := h.groupService.Create(ctx, usecase.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		AdminUserID: userID,
		SeasonID:    req.SeasonID,
		StartRound:  req.StartRound,
		EndRound:    req.EndRound,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create group failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, groupToDTO(group))
}

func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinGroup")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user identity is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req joinGroupRequest
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

	group, err := h.groupService.Join(ctx, usecase.JoinGroupInput{
		UserID:     userID,
		AccessCode: req.AccessCode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join group failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groupToDTO(group))
}

func groupToDTO(v usergroup.Group) groupDTO {
	out := groupDTO{
		ID:          v.ID,
		Name:        v.Name,
		AccessCode:  v.AccessCode,
		Description: v.Description,
		SeasonID:    v.SeasonID,
		StartRound:  v.StartRound,
		EndRound:    v.EndRound,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.AdminUserID != nil {
		out.AdminUserID = *v.AdminUserID
	}
	return out
}
