package api

import (
	"net/http"
)

// FiguresHandler handles figure requests for a selection.
type FiguresHandler struct {
	deps Dependencies
}

// NewFiguresHandler creates a new figures handler.
func NewFiguresHandler(deps Dependencies) *FiguresHandler {
	return &FiguresHandler{deps: deps}
}

// HandleGetFigures handles GET /api/figures?year=&region= requests.
func (h *FiguresHandler) HandleGetFigures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.CheckReadiness(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", ErrUnavailable)
		return
	}
	year, region, err := parseSelection(r, h.deps)
	if err != nil {
		writeDepError(w, err)
		return
	}
	res, err := h.deps.Figures(r.Context(), year, region)
	if err != nil {
		writeDepError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
