package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/treasurerun/hunt-api/internal/domain/progress"
	"github.com/treasurerun/hunt-api/internal/usecase"
)

type restrictTeamRequest struct {
	TeamID     string `json:"teamId" validate:"required"`
	Restricted *bool  `json:"restricted" validate:"required"`
}

type teamSummaryResponse struct {
	Team       string `json:"team"`
	TeamID     string `json:"teamId"`
	Progress   int    `json:"progress"`
	Restricted bool   `json:"restricted"`
}

type allTeamsResponse struct {
	Teams []teamSummaryResponse `json:"teams"`
}

type teamLocationsResponse struct {
	Locations map[string]string `json:"locations"`
}

type overviewResponse struct {
	Teams       []teamSummaryResponse    `json:"teams"`
	Leaderboard []leaderboardRowResponse `json:"leaderboard"`
	Activity    []activityEntryResponse  `json:"activity"`
}

// AllTeams lists every team for the operator console, restricted included.
func (h *Handler) AllTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AllTeams")
	defer span.End()

	teams, err := h.moderationService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, allTeamsResponse{Teams: teamSummaries(teams)})
}

// RestrictTeam flips the disqualification flag by identifier or name.
func (h *Handler) RestrictTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RestrictTeam")
	defer span.End()

	var req restrictTeamRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.moderationService.SetRestricted(ctx, req.TeamID, *req.Restricted)
	if err != nil {
		if errorStatus(err) == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "restrict team failed", "identifier", req.TeamID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	verb := "restricted"
	if !summary.Restricted {
		verb = "reinstated"
	}
	writeJSON(ctx, w, http.StatusOK, messageBody{
		Message: fmt.Sprintf("Team %s has been %s", summary.TeamName, verb),
	})
}

// TeamLocations reveals a team's full route. Operator-only.
func (h *Handler) TeamLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeamLocations")
	defer span.End()

	teamName := strings.TrimSpace(r.PathValue("teamName"))

	rt, err := h.moderationService.TeamRoute(ctx, teamName)
	if err != nil {
		if errorStatus(err) == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "team route lookup failed", "team", teamName, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	locations := map[string]string{
		progress.SlotStart.String(): rt.Start,
		progress.SlotEnd.String():   rt.End,
	}
	for i, code := range rt.Intermediates {
		locations[(progress.SlotLocation1 + progress.Slot(i)).String()] = code
	}
	writeJSON(ctx, w, http.StatusOK, teamLocationsResponse{Locations: locations})
}

// Overview aggregates the operator console view in one response.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Overview")
	defer span.End()

	overview, err := h.dashboardService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "overview aggregation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	activity := make([]activityEntryResponse, 0, len(overview.Activity))
	for _, entry := range overview.Activity {
		activity = append(activity, activityEntryResponse{
			Team:     entry.TeamName,
			Location: entry.Checkpoint,
			Time:     entry.TimeOfDay,
		})
	}

	writeJSON(ctx, w, http.StatusOK, overviewResponse{
		Teams:       teamSummaries(overview.Teams),
		Leaderboard: leaderboardRows(overview.Leaderboard),
		Activity:    activity,
	})
}

func teamSummaries(teams []usecase.TeamSummary) []teamSummaryResponse {
	out := make([]teamSummaryResponse, 0, len(teams))
	for _, item := range teams {
		out = append(out, teamSummaryResponse{
			Team:       item.TeamName,
			TeamID:     item.TeamID,
			Progress:   item.Score,
			Restricted: item.Restricted,
		})
	}
	return out
}
