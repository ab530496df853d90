package httpapi

import (
	"net/http"
	"time"

	"github.com/treasurerun/hunt-api/internal/usecase"
)

type leaderboardRowResponse struct {
	Team     string     `json:"team"`
	TeamID   string     `json:"teamId"`
	Progress int        `json:"progress"`
	LastTime *time.Time `json:"lastTime"`
	Status   string     `json:"status"`
}

type leaderboardResponse struct {
	Leaderboard []leaderboardRowResponse `json:"leaderboard"`
}

type activityEntryResponse struct {
	Team     string `json:"team"`
	Location string `json:"location"`
	Time     string `json:"time"`
}

// Leaderboard serves the public live ranking.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Leaderboard")
	defer span.End()

	rows, err := h.leaderboardService.Leaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard query failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, leaderboardResponse{Leaderboard: leaderboardRows(rows)})
}

// Registered lists the append-only confirmation log.
func (h *Handler) Registered(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Registered")
	defer span.End()

	entries, err := h.activityService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "activity query failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]activityEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, activityEntryResponse{
			Team:     entry.TeamName,
			Location: entry.Checkpoint,
			Time:     entry.TimeOfDay,
		})
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func leaderboardRows(rows []usecase.LeaderboardRow) []leaderboardRowResponse {
	out := make([]leaderboardRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboardRowResponse{
			Team:     row.TeamName,
			TeamID:   row.TeamID,
			Progress: row.Score,
			LastTime: row.LastTime,
			Status:   row.Status,
		})
	}
	return out
}
