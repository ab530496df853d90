package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/treasurerun/hunt-api/internal/domain/team"
	"github.com/treasurerun/hunt-api/internal/usecase"
)

// internalErrorMessage is the opaque body for storage and consistency
// failures. The full error is logged server-side, never sent to players.
const internalErrorMessage = "Unexpected error occurred"

type messageBody struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// writeError maps the error taxonomy onto statuses: client input and
// lookups are 4xx with the real message, everything unexpected is an opaque
// 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	writeJSON(ctx, w, errorStatus(err), messageBody{Message: errorMessage(err)})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, messageBody{Message: internalErrorMessage})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrMissingDevice),
		errors.Is(err, usecase.ErrUnknownTeam),
		errors.Is(err, usecase.ErrAllCheckpointsVisited),
		errors.Is(err, usecase.ErrNoCheckpointsAvailable),
		errors.Is(err, team.ErrNameTaken):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrTeamDisqualified),
		errors.Is(err, usecase.ErrDeviceMismatch):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrTeamDisqualified):
		return "This team has been restricted from the event"
	case errors.Is(err, usecase.ErrDeviceMismatch):
		return "This device is not allowed to scan for this team"
	case errors.Is(err, usecase.ErrAllCheckpointsVisited):
		return "All locations have already been visited"
	case errorStatus(err) == http.StatusInternalServerError:
		return internalErrorMessage
	default:
		return err.Error()
	}
}
