package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/wildfire/internal/adapters/render"
)

// ChartsHandler serves rendered chart images.
type ChartsHandler struct {
	deps Dependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleGetChart handles GET /charts/{kind}.{format}?year=&region= requests.
func (h *ChartsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/charts/")
	kind, format, ok := strings.Cut(name, ".")
	if !ok || kind == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("no chart at %q", r.URL.Path))
		return
	}
	contentType, err := render.ContentType(format)
	if err != nil {
		writeDepError(w, err)
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

	// Render fully before writing so failures still get a JSON error.
	var buf bytes.Buffer
	if err := h.deps.RenderChart(r.Context(), &buf, kind, format, year, region); err != nil {
		writeDepError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
