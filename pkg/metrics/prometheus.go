// Package metrics provides Prometheus metrics for the wildfire dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Latency histograms are recorded in milliseconds.
var defaultBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}

// A region-year holds at most 366 daily rows.
var defaultRowBuckets = []float64{0, 1, 5, 10, 25, 50, 100, 250, 500}

// Manager owns every metric the service exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	rowBuckets       []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Dataset
	datasetRecords     prometheus.Gauge
	datasetRowsSkipped prometheus.Gauge
	datasetRegions     prometheus.Gauge
	datasetYears       prometheus.Gauge
	datasetLoadLatency prometheus.Gauge
	datasetLoadedUnix  prometheus.Gauge

	// Selection -> figure
	figureBuilds       *prometheus.CounterVec
	figureEmpty        *prometheus.CounterVec
	figureBuildLatency prometheus.Histogram
	figureRows         prometheus.Histogram

	// Chart rendering
	chartRenders       *prometheus.CounterVec
	chartRenderErrors  *prometheus.CounterVec
	chartRenderLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// Process
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

// Custom registry keeps the exposition free of the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "wildfire",
		subsystem:        "dashboard",
		histogramBuckets: defaultBuckets,
		rowBuckets:       defaultRowBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.datasetRecords = m.gauge("dataset_records", "Number of wildfire records held in memory")
	m.datasetRowsSkipped = m.gauge("dataset_rows_skipped", "Number of CSV rows skipped while loading")
	m.datasetRegions = m.gauge("dataset_regions", "Number of distinct region codes in the dataset")
	m.datasetYears = m.gauge("dataset_years", "Number of distinct years in the dataset")
	m.datasetLoadLatency = m.gauge("dataset_load_duration_milliseconds", "Duration of the last dataset load in milliseconds")
	m.datasetLoadedUnix = m.gauge("dataset_loaded_unix", "Unix timestamp of the last dataset load")

	m.figureBuilds = m.counterVec("figure_builds_total", "Selections turned into chart figures", "region")
	m.figureEmpty = m.counterVec("figure_empty_total", "Selections that matched no rows", "region")
	m.figureBuildLatency = m.histogram("figure_build_latency_milliseconds", "Latency of filtering and grouping a selection", m.histogramBuckets)
	m.figureRows = m.histogram("figure_rows", "Rows matched per selection", m.rowBuckets)

	m.chartRenders = m.counterVec("chart_renders_total", "Rendered chart images", "kind", "format")
	m.chartRenderErrors = m.counterVec("chart_render_errors_total", "Chart rendering failures", "kind", "format")
	m.chartRenderLatency = m.histogramVec("chart_render_latency_milliseconds", "Chart rendering latency in milliseconds", "kind", "format")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint", "endpoint", "method", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "HTTP errors by type and severity", "error_type", "severity")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Dataset metrics.

// RecordDatasetLoad publishes the shape of a freshly loaded dataset.
func RecordDatasetLoad(records, skipped, regions, years int, durationMs float64, loadedUnix int64) {
	globalManager.datasetRecords.Set(float64(records))
	globalManager.datasetRowsSkipped.Set(float64(skipped))
	globalManager.datasetRegions.Set(float64(regions))
	globalManager.datasetYears.Set(float64(years))
	globalManager.datasetLoadLatency.Set(durationMs)
	globalManager.datasetLoadedUnix.Set(float64(loadedUnix))
}

// Figure metrics.

// RecordFigureBuild records one selection turned into figures.
func RecordFigureBuild(region string, rows int, latencyMs float64) {
	globalManager.figureBuilds.WithLabelValues(region).Inc()
	globalManager.figureRows.Observe(float64(rows))
	globalManager.figureBuildLatency.Observe(latencyMs)
	if rows == 0 {
		globalManager.figureEmpty.WithLabelValues(region).Inc()
	}
}

// Chart metrics.

// RecordChartRender records a successful chart render.
func RecordChartRender(kind, format string, latencyMs float64) {
	globalManager.chartRenders.WithLabelValues(kind, format).Inc()
	globalManager.chartRenderLatency.WithLabelValues(kind, format).Observe(latencyMs)
}

// RecordChartRenderError records a failed chart render.
func RecordChartRenderError(kind, format string) {
	globalManager.chartRenderErrors.WithLabelValues(kind, format).Inc()
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// Process metrics.

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
