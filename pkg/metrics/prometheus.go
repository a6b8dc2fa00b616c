// Package metrics provides Prometheus metrics for the jamstats engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the jamstats engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Parse stage
	gamesParsed  prometheus.Counter
	parseErrors  prometheus.Counter
	parseLatency prometheus.Histogram

	// Fold and post-process
	gamesFolded            prometheus.Counter
	jamsFolded             prometheus.Counter
	lineupsWithoutScore    prometheus.Counter
	penaltiesFolded        prometheus.Counter
	penaltiesWithoutLineup prometheus.Counter
	skatersTracked         *prometheus.GaugeVec
	teamsTracked           prometheus.Gauge
	runs                   prometheus.Counter
	runDuration            prometheus.Histogram

	// Snapshot repository
	snapshotUpdates  prometheus.Counter
	snapshotLastUnix prometheus.Gauge
	queryLatency     prometheus.Histogram

	// Queue
	queueCapacity     prometheus.Gauge
	queueSize         prometheus.Gauge
	queueUtilization  prometheus.Gauge
	queueEnqueued     prometheus.Counter
	queueDequeued     prometheus.Counter
	queueEnqueueError prometheus.Counter

	// Parse workers
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

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
		namespace:        "jamstats",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
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

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)
	latencyBuckets := []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

	m.gamesParsed = auto.NewCounter(m.counterOpts("games_parsed_total", "Statbook files parsed into games"))
	m.parseErrors = auto.NewCounter(m.counterOpts("parse_errors_total", "Statbook files that failed to parse"))
	m.parseLatency = auto.NewHistogram(m.histogramOpts("parse_latency_milliseconds",
		"Time to parse one statbook file in milliseconds", latencyBuckets))

	m.gamesFolded = auto.NewCounter(m.counterOpts("games_folded_total", "Games folded into the accumulators"))
	m.jamsFolded = auto.NewCounter(m.counterOpts("jams_folded_total", "Lineup rows folded as jams"))
	m.lineupsWithoutScore = auto.NewCounter(m.counterOpts("lineups_without_score_total",
		"Lineup rows without a matching score row, folded as 0-0 jams"))
	m.penaltiesFolded = auto.NewCounter(m.counterOpts("penalties_folded_total", "Penalties folded"))
	m.penaltiesWithoutLineup = auto.NewCounter(m.counterOpts("penalties_without_lineup_total",
		"Penalties whose jam has no lineup row"))
	m.skatersTracked = auto.NewGaugeVec(m.gaugeOpts("skaters_tracked", "Skaters in each skater-set after the last run"),
		[]string{"set"})
	m.teamsTracked = auto.NewGauge(m.gaugeOpts("teams_tracked", "Teams after the last run"))
	m.runs = auto.NewCounter(m.counterOpts("runs_total", "Completed aggregation runs"))
	m.runDuration = auto.NewHistogram(m.histogramOpts("run_duration_milliseconds",
		"Duration of a full parse, fold and post-process run in milliseconds", latencyBuckets))

	m.snapshotUpdates = auto.NewCounter(m.counterOpts("snapshot_updates_total", "Snapshots published to the repository"))
	m.snapshotLastUnix = auto.NewGauge(m.gaugeOpts("snapshot_last_unix", "Unix time of the last published snapshot"))
	m.queryLatency = auto.NewHistogram(m.histogramOpts("repository_query_latency_milliseconds",
		"Snapshot query latency in milliseconds", m.histogramBuckets))

	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Capacity of the parse job queue"))
	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Jobs waiting in the parse job queue"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue size divided by capacity"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueued_total", "Jobs enqueued"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeued_total", "Jobs dequeued"))
	m.queueEnqueueError = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Failed enqueue attempts"))

	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Parse workers currently running"))
	m.workerProcessingLatency = auto.NewHistogram(m.histogramOpts("worker_processing_latency_milliseconds",
		"Time a worker spends on one job in milliseconds", latencyBuckets))
	m.workerErrors = auto.NewCounter(m.counterOpts("worker_errors_total", "Jobs that failed in a worker"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"})
	m.errorsByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "HTTP errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes", "Allocated heap memory in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds",
		"Average GC pause in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100}))
}

// RecordGameParsed counts one parsed file and its parse latency.
func RecordGameParsed(latencyMs float64) {
	globalManager.gamesParsed.Inc()
	globalManager.parseLatency.Observe(latencyMs)
}

// RecordParseError counts one file that failed to parse.
func RecordParseError() {
	globalManager.parseErrors.Inc()
}

// FoldCounts mirrors the fold diagnostics without importing the domain.
type FoldCounts struct {
	Games                  int
	Jams                   int
	LineupsWithoutScore    int
	Penalties              int
	PenaltiesWithoutLineup int
}

// RecordFold adds the counters of one completed fold.
func RecordFold(c FoldCounts) {
	globalManager.gamesFolded.Add(float64(c.Games))
	globalManager.jamsFolded.Add(float64(c.Jams))
	globalManager.lineupsWithoutScore.Add(float64(c.LineupsWithoutScore))
	globalManager.penaltiesFolded.Add(float64(c.Penalties))
	globalManager.penaltiesWithoutLineup.Add(float64(c.PenaltiesWithoutLineup))
}

// UpdateSkatersTracked sets the skater count of one skater-set.
func UpdateSkatersTracked(set string, count int) {
	globalManager.skatersTracked.WithLabelValues(set).Set(float64(count))
}

// UpdateTeamsTracked sets the team count.
func UpdateTeamsTracked(count int) {
	globalManager.teamsTracked.Set(float64(count))
}

// RecordRun counts one completed run and its duration.
func RecordRun(durationMs float64) {
	globalManager.runs.Inc()
	globalManager.runDuration.Observe(durationMs)
}

// RecordSnapshotUpdate counts one published snapshot at unix time ts.
func RecordSnapshotUpdate(ts float64) {
	globalManager.snapshotUpdates.Inc()
	globalManager.snapshotLastUnix.Set(ts)
}

// RecordRepositoryQueryLatency records snapshot query latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.queryLatency.Observe(latencyMs)
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueError.Inc()
}

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
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

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
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
