package api

import (
	"maps"
	"net/http"
)

// StatsProvider exposes service statistics for /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the service statistics merged with the readiness state.
type StatsHandler struct {
	stats     StatsProvider
	readiness ReadinessChecker
}

// NewStatsHandler creates a stats handler. readiness may be nil, in which
// case the "ready" field is omitted.
func NewStatsHandler(stats StatsProvider, readiness ReadinessChecker) *StatsHandler {
	return &StatsHandler{stats: stats, readiness: readiness}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	// Copy so the provider's map is never written to.
	body := maps.Clone(h.stats.GetStats())
	if body == nil {
		body = map[string]interface{}{}
	}
	if h.readiness != nil {
		body["ready"] = h.readiness.CheckReadiness(r.Context()) == nil
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, body)
}
