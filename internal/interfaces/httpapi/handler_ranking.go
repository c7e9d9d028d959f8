package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/typerliga/prediction-league/internal/usecase"
)

type rankingEntryDTO struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	TotalPoints int    `json:"totalPoints"`
}

func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRanking")
	defer span.End()

	userID, ok := userIDFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: user identity is missing from request context", usecase.ErrUnauthorized))
		return
	}

	accessCode := strings.TrimSpace(r.PathValue("accessCode"))
	if accessCode == "" {
		writeError(ctx, w, fmt.Errorf("%w: access code is required", usecase.ErrInvalidInput))
		return
	}

	entries, err := h.rankingService.Rank(ctx, accessCode, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "ranking failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]rankingEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, rankingEntryDTO{
			Rank:        entry.Rank,
			UserID:      entry.UserID,
			TotalPoints: entry.TotalPoints,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
