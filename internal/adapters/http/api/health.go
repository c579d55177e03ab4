package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/wildfire/pkg/metrics"
)

// ReadinessChecker reports whether the service can answer queries.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// HealthHandler handles liveness, readiness and metrics requests.
type HealthHandler struct {
	readiness ReadinessChecker
	metrics   http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(readiness ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		readiness: readiness,
		metrics:   promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

// HandleHealth handles GET /healthz requests. The process is alive as long
// as it can answer.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// HandleReady handles GET /readyz requests. It answers 503 until the
// dataset is loaded.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if err := h.readiness.CheckReadiness(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", fmt.Errorf("%w: %w", ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ready"})
}

// HandleMetrics serves the custom Prometheus registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
