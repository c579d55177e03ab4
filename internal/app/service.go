// Package service provides the dashboard service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/okian/wildfire/internal/adapters/render"
	"github.com/okian/wildfire/internal/adapters/repository"
	"github.com/okian/wildfire/internal/domain/figure"
	"github.com/okian/wildfire/internal/domain/model"
	"github.com/okian/wildfire/pkg/logger"
	"github.com/okian/wildfire/pkg/metrics"
	"github.com/okian/wildfire/pkg/tracing"
)

const fallbackRegion = "WA"

// Service loads the wildfire table once and answers selection queries over it.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	renderer *render.Renderer
	clock    clockwork.Clock

	// Configuration
	dataPath        string
	preferredRegion string

	// Derived from the table on start
	offered       []model.Region
	offeredCodes  map[string]bool
	years         []int
	defaultRegion string
	defaultYear   int
	report        repository.LoadReport

	// State
	started   bool
	createdAt time.Time
	loadedAt  time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the CSV file loaded on start.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithDefaultRegion sets the region preselected on the dashboard.
func WithDefaultRegion(code string) Option {
	return func(s *Service) {
		s.preferredRegion = code
	}
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithStore uses an already loaded store instead of reading dataPath.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		s.store = st
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:        "Historical_Wildfires.csv",
		preferredRegion: fallbackRegion,
		clock:           clockwork.NewRealClock(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		s.renderer = render.New()
	}
	s.createdAt = s.clock.Now()
	return s
}

// Start loads the table and derives the selector options. Calling it again
// on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	begin := s.clock.Now()
	if s.store == nil {
		s.logger.Info(ctx, "loading wildfire dataset", logger.String("path", s.dataPath))

		records, report, err := repository.LoadFile(ctx, s.dataPath)
		if err != nil {
			return fmt.Errorf("load %s: %w", s.dataPath, err)
		}
		s.report = report
		s.store = repository.NewMemoryStore(records)

		for _, sk := range report.Skipped {
			s.logger.Warn(ctx, "skipped malformed row",
				logger.Int("line", sk.Line),
				logger.String("reason", sk.Reason),
			)
		}
	} else if s.report.Loaded == 0 {
		n := s.store.Count(ctx)
		s.report = repository.LoadReport{Rows: n, Loaded: n}
	}

	var missing []string
	s.offered, missing = model.OfferedRegions(s.store.RegionCodes(ctx))
	s.offeredCodes = make(map[string]bool, len(s.offered))
	for _, r := range s.offered {
		s.offeredCodes[r.Code] = true
	}
	s.years = s.store.Years(ctx)
	s.defaultRegion = s.pickDefaultRegion()
	s.defaultYear = 0
	if len(s.years) > 0 {
		s.defaultYear = s.years[0]
	}

	if len(missing) > 0 {
		s.logger.Warn(ctx, "known regions absent from dataset", logger.Any("regions", missing))
	}
	if len(s.offered) == 0 {
		s.logger.Warn(ctx, "dataset holds no usable rows")
	}

	s.loadedAt = s.clock.Now()
	elapsed := s.loadedAt.Sub(begin)
	metrics.RecordDatasetLoad(
		s.report.Loaded,
		len(s.report.Skipped),
		len(s.offered),
		len(s.years),
		float64(elapsed.Microseconds())/1000,
		s.loadedAt.Unix(),
	)

	s.started = true
	s.logger.Info(ctx, "wildfire service started",
		logger.Int("records", s.report.Loaded),
		logger.Int("skipped", len(s.report.Skipped)),
		logger.Int("regions", len(s.offered)),
		logger.Int("years", len(s.years)),
		logger.String("defaultRegion", s.defaultRegion),
		logger.Int("defaultYear", s.defaultYear),
		logger.Duration("took", elapsed),
	)
	return nil
}

// pickDefaultRegion prefers the configured region, then WA, then the first
// offered region. Callers hold s.mu.
func (s *Service) pickDefaultRegion() string {
	for _, code := range []string{s.preferredRegion, fallbackRegion} {
		if code != "" && s.offeredCodes[code] {
			return code
		}
	}
	if len(s.offered) > 0 {
		return s.offered[0].Code
	}
	return ""
}

// Stop marks the service as stopped. The loaded table is kept, so a later
// Start does not read the file again.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping wildfire service...")
	s.started = false
	s.logger.Info(context.Background(), "wildfire service stopped")
}

// Controls returns the selector options and their initial values.
func (s *Service) Controls(_ context.Context) (model.Controls, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return model.Controls{}, ErrNotStarted
	}
	return model.Controls{
		Regions:       slices.Clone(s.offered),
		Years:         slices.Clone(s.years),
		DefaultRegion: s.defaultRegion,
		DefaultYear:   s.defaultYear,
	}, nil
}

// Figures builds both charts for a selection. A year without data yields
// empty figures; a region that is not offered is an error.
func (s *Service) Figures(ctx context.Context, year int, region string) (figure.Result, error) {
	ctx, span := tracing.Start(ctx, "service.Figures")
	defer span.End()
	span.SetAttributes(attribute.String("wildfire.region", region), attribute.Int("wildfire.year", year))

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return figure.Result{}, ErrNotStarted
	}
	if !s.offeredCodes[region] {
		return figure.Result{}, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	begin := s.clock.Now()
	sel := figure.Selection{Year: year, Region: region}
	res := figure.FromRows(s.store.Select(ctx, region, year), sel)
	span.SetAttributes(attribute.Int("wildfire.rows", res.Rows))
	metrics.RecordFigureBuild(region, res.Rows, float64(s.clock.Since(begin).Microseconds())/1000)

	if res.Rows == 0 {
		s.logger.Debug(ctx, "selection matched no rows",
			logger.String("region", region),
			logger.Int("year", year),
		)
	}
	return res, nil
}

// RenderChart draws one of the two figures for a selection onto w.
func (s *Service) RenderChart(ctx context.Context, w io.Writer, kind, format string, year int, region string) error {
	ctx, span := tracing.Start(ctx, "service.RenderChart")
	defer span.End()
	span.SetAttributes(attribute.String("chart.kind", kind), attribute.String("chart.format", format))

	k, err := figure.ParseKind(kind)
	if err != nil {
		return err
	}
	if _, err := render.ContentType(format); err != nil {
		return err
	}

	res, err := s.Figures(ctx, year, region)
	if err != nil {
		return err
	}

	fig := res.Pie
	if k == figure.KindBar {
		fig = res.Bar
	}

	begin := s.clock.Now()
	if err := s.renderer.Render(w, fig, format); err != nil {
		metrics.RecordChartRenderError(kind, format)
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		s.logger.Error(ctx, "chart render failed",
			logger.String("kind", kind),
			logger.String("format", format),
			logger.Error(err),
		)
		return err
	}
	metrics.RecordChartRender(kind, format, float64(s.clock.Since(begin).Microseconds())/1000)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"dataPath":      s.dataPath,
		"uptimeSeconds": int64(s.clock.Since(s.createdAt).Seconds()),
	}

	if s.started {
		stats["records"] = s.report.Loaded
		stats["rows"] = s.report.Rows
		stats["skippedRows"] = len(s.report.Skipped)
		stats["regions"] = len(s.offered)
		stats["years"] = len(s.years)
		stats["defaultRegion"] = s.defaultRegion
		stats["defaultYear"] = s.defaultYear
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
	}

	return stats
}

// CheckReadiness reports whether the table has been loaded.
func (s *Service) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	return nil
}
