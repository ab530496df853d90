package httpapi

import (
	"errors"
	"net/http"

	"github.com/treasurerun/hunt-api/internal/domain/route"
	"github.com/treasurerun/hunt-api/internal/usecase"
)

type checkRequest struct {
	QRData     string `json:"qrData" validate:"required"`
	TeamNumber string `json:"teamNumber" validate:"required"`
	DeviceID   string `json:"deviceId"`
	MemberName string `json:"memberName" validate:"omitempty,max=100"`
}

type checkResponse struct {
	Correct  bool   `json:"correct"`
	NextHint string `json:"nextHint,omitempty"`
	Message  string `json:"message,omitempty"`
}

type saveLocationsRequest struct {
	Team    string   `json:"team" validate:"required,max=100"`
	Members []string `json:"members" validate:"required,min=1,max=4"`
}

type saveLocationsResponse struct {
	TeamID    string   `json:"teamId"`
	Locations []string `json:"locations"`
}

// Check verifies one QR scan against the calling team's route.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Check")
	defer span.End()

	var req checkRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.verificationService.Verify(ctx, usecase.ScanInput{
		QRData:     req.QRData,
		TeamName:   req.TeamNumber,
		DeviceID:   req.DeviceID,
		MemberName: req.MemberName,
	})
	if err != nil {
		if errorStatus(err) == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "scan verification failed",
				"team", req.TeamNumber,
				"error", err,
			)
		}
		writeError(ctx, w, err)
		return
	}

	if !result.Correct {
		writeJSON(ctx, w, http.StatusBadRequest, checkResponse{Correct: false, Message: result.Message})
		return
	}
	writeJSON(ctx, w, http.StatusOK, checkResponse{Correct: true, NextHint: result.NextHint})
}

// SaveLocations registers a team and assigns its random route.
func (h *Handler) SaveLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLocations")
	defer span.End()

	var req saveLocationsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	result, err := h.provisioningService.Provision(ctx, usecase.ProvisionInput{
		TeamName: req.Team,
		Members:  req.Members,
	})
	if err != nil {
		var partial *usecase.PartialProvisioningError
		if errors.As(err, &partial) {
			h.logger.ErrorContext(ctx, "provisioning left partial state",
				"team", partial.TeamName,
				"team_id", partial.TeamID,
				"error", err,
			)
			writeInternalError(ctx, w)
			return
		}
		if status := errorStatus(err); status == http.StatusBadRequest {
			writeJSON(ctx, w, status, errorBody{Error: errorMessage(err)})
			return
		}
		h.logger.ErrorContext(ctx, "provisioning failed", "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, saveLocationsResponse{
		TeamID:    result.TeamID,
		Locations: routeSlots(result.Route),
	})
}

func routeSlots(rt route.Route) []string {
	out := make([]string, 0, route.IntermediateCount+2)
	out = append(out, rt.Start)
	out = append(out, rt.Intermediates[:]...)
	out = append(out, rt.End)
	return out
}
