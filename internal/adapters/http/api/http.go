// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/wildfire/internal/adapters/render"
	"github.com/okian/wildfire/internal/domain/figure"
	"github.com/okian/wildfire/internal/domain/model"
	"github.com/okian/wildfire/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ReadinessChecker

	// Controls returns the selector options and their initial values.
	Controls(ctx context.Context) (model.Controls, error)

	// Figures builds the pie and bar figures for a selection.
	Figures(ctx context.Context, year int, region string) (figure.Result, error)

	// RenderChart draws one figure of a selection as an image.
	RenderChart(ctx context.Context, w io.Writer, kind, format string, year int, region string) error
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	controlsHandler *ControlsHandler
	figuresHandler  *FiguresHandler
	chartsHandler   *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(deps),
		statsHandler:    NewStatsHandler(statsProvider, deps),
		controlsHandler: NewControlsHandler(deps),
		figuresHandler:  NewFiguresHandler(deps),
		chartsHandler:   NewChartsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/readyz", MetricsMiddleware(s.healthHandler.HandleReady, "readyz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/controls", MetricsMiddleware(s.controlsHandler.HandleGetControls, "controls"))
	mux.HandleFunc("/api/figures", MetricsMiddleware(s.figuresHandler.HandleGetFigures, "figures"))
	mux.HandleFunc("/charts/", MetricsMiddleware(s.chartsHandler.HandleGetChart, "charts"))

	logger.Get().Debug(ctx, "api routes registered")
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before touching the response, so an unencodable value
// (a NaN, say) becomes a 500 instead of a 200 with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Named("http").Error(context.Background(), "response encoding failed", logger.Error(err))
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Code: "internal_error", Message: "response encoding failed"})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDepError maps errors returned by Dependencies onto HTTP responses.
func writeDepError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, model.ErrUnknownRegion),
		errors.Is(err, figure.ErrUnknownKind),
		errors.Is(err, render.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
