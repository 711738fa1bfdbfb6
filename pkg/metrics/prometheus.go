// Package metrics provides Prometheus metrics for the pitchcard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pitchcard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Card pipeline
	cardsRendered     *prometheus.CounterVec
	renderLatency     prometheus.Histogram
	rendersInFlight   prometheus.Gauge
	rendersSupersede  prometheus.Counter
	pitchesAggregated prometheus.Counter

	// Upstream providers
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec

	// Local cache
	cacheLookups *prometheus.CounterVec

	// Roster enrichment
	rosterSize          prometheus.Gauge
	enrichBatches       *prometheus.CounterVec
	enrichFallbacks     prometheus.Counter
	enrichWorkersActive prometheus.Gauge
	enrichQueueDepth    prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchcard",
		subsystem:        "service",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.cardsRendered = auto.NewCounterVec(
		m.counterOpts("cards_rendered_total", "Total number of pitcher cards rendered by output format"),
		[]string{"format"},
	)
	m.renderLatency = auto.NewHistogram(
		m.histogramOpts("render_latency_milliseconds", "End to end card pipeline latency in milliseconds"),
	)
	m.rendersInFlight = auto.NewGauge(
		m.gaugeOpts("renders_in_flight", "Number of card renders currently running"),
	)
	m.rendersSupersede = auto.NewCounter(
		m.counterOpts("renders_superseded_total", "Renders cancelled because a newer request arrived for the same session"),
	)
	m.pitchesAggregated = auto.NewCounter(
		m.counterOpts("pitches_aggregated_total", "Total number of pitch events fed through the aggregator"),
	)

	m.providerRequests = auto.NewCounterVec(
		m.counterOpts("provider_requests_total", "Outbound provider requests by provider and outcome"),
		[]string{"provider", "outcome"},
	)
	m.providerLatency = auto.NewHistogramVec(
		m.histogramOpts("provider_latency_milliseconds", "Outbound provider latency in milliseconds"),
		[]string{"provider"},
	)

	m.cacheLookups = auto.NewCounterVec(
		m.counterOpts("cache_lookups_total", "Local cache lookups by table and result"),
		[]string{"table", "result"},
	)

	m.rosterSize = auto.NewGauge(
		m.gaugeOpts("roster_size", "Number of pitchers in the current roster directory"),
	)
	m.enrichBatches = auto.NewCounterVec(
		m.counterOpts("enrich_batches_total", "Roster enrichment batches by outcome"),
		[]string{"outcome"},
	)
	m.enrichFallbacks = auto.NewCounter(
		m.counterOpts("enrich_fallbacks_total", "Players that fell back to Unknown during enrichment"),
	)
	m.enrichWorkersActive = auto.NewGauge(
		m.gaugeOpts("enrich_workers_active", "Number of enrichment workers currently running"),
	)
	m.enrichQueueDepth = auto.NewGauge(
		m.gaugeOpts("enrich_queue_depth", "Number of enrichment batches waiting in the queue"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated by the process"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of running goroutines"),
	)
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_milliseconds", "Average GC pause time in milliseconds"),
	)
}

// RecordCardRendered increments the rendered cards counter for format.
func RecordCardRendered(format string) {
	globalManager.cardsRendered.WithLabelValues(format).Inc()
}

// RecordRenderLatency records card pipeline latency in milliseconds.
func RecordRenderLatency(latencyMs float64) {
	globalManager.renderLatency.Observe(latencyMs)
}

// AddRendersInFlight adjusts the in-flight render gauge by delta.
func AddRendersInFlight(delta int) {
	globalManager.rendersInFlight.Add(float64(delta))
}

// RecordRenderSuperseded increments the superseded renders counter.
func RecordRenderSuperseded() {
	globalManager.rendersSupersede.Inc()
}

// RecordPitchesAggregated adds n to the aggregated pitches counter.
func RecordPitchesAggregated(n int) {
	globalManager.pitchesAggregated.Add(float64(n))
}

// RecordProviderRequest records one outbound request to provider with outcome
// ("ok", "error", "status").
func RecordProviderRequest(provider, outcome string) {
	globalManager.providerRequests.WithLabelValues(provider, outcome).Inc()
}

// RecordProviderLatency records outbound latency for provider in milliseconds.
func RecordProviderLatency(provider string, latencyMs float64) {
	globalManager.providerLatency.WithLabelValues(provider).Observe(latencyMs)
}

// RecordCacheHit increments the cache hit counter for table.
func RecordCacheHit(table string) {
	globalManager.cacheLookups.WithLabelValues(table, "hit").Inc()
}

// RecordCacheMiss increments the cache miss counter for table.
func RecordCacheMiss(table string) {
	globalManager.cacheLookups.WithLabelValues(table, "miss").Inc()
}

// UpdateRosterSize sets the roster directory size.
func UpdateRosterSize(count int) {
	globalManager.rosterSize.Set(float64(count))
}

// RecordEnrichBatch records an enrichment batch outcome ("ok", "failed", "timeout").
func RecordEnrichBatch(outcome string) {
	globalManager.enrichBatches.WithLabelValues(outcome).Inc()
}

// RecordEnrichFallbacks adds n players to the Unknown fallback counter.
func RecordEnrichFallbacks(n int) {
	globalManager.enrichFallbacks.Add(float64(n))
}

// UpdateEnrichWorkersActive sets the number of running enrichment workers.
func UpdateEnrichWorkersActive(count int) {
	globalManager.enrichWorkersActive.Set(float64(count))
}

// UpdateEnrichQueueDepth sets the number of queued enrichment batches.
func UpdateEnrichQueueDepth(depth int) {
	globalManager.enrichQueueDepth.Set(float64(depth))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records the average GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
