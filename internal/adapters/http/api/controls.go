package api

import (
	"net/http"
)

// ControlsDependencies defines what the controls endpoint needs.
type ControlsDependencies interface {
	ReadinessChecker
	ControlsProvider
}

// ControlsHandler handles selector option requests.
type ControlsHandler struct {
	deps ControlsDependencies
}

// NewControlsHandler creates a new controls handler.
func NewControlsHandler(deps ControlsDependencies) *ControlsHandler {
	return &ControlsHandler{deps: deps}
}

// HandleGetControls handles GET /api/controls requests.
func (h *ControlsHandler) HandleGetControls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.CheckReadiness(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", ErrUnavailable)
		return
	}
	c, err := h.deps.Controls(r.Context())
	if err != nil {
		writeDepError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
