package httpapi

import "net/http"

type statusResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, statusResponse{Status: "ok"})
}

// Health proves the storage backend is reachable before reporting ok.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.healthService.Check(ctx); err != nil {
		h.logger.ErrorContext(ctx, "health check failed", "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, statusResponse{
			Status: "error",
			Detail: "storage backend unreachable",
		})
		return
	}
	writeJSON(ctx, w, http.StatusOK, statusResponse{Status: "ok"})
}
