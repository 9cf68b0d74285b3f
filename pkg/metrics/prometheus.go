// Package metrics provides Prometheus metrics for the trade finder service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Analysis metrics - what drives the service
	analysesTotal    prometheus.Counter
	analysisDuration prometheus.Histogram
	tradesEvaluated  prometheus.Counter
	tradesAccepted   prometheus.Counter

	// Resolver metrics - identity matching quality
	resolverHits   prometheus.Counter
	resolverMisses prometheus.Counter

	// Data metrics
	projectionCount prometheus.Gauge
	rosterCount     prometheus.Gauge
	cachePurged     prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager on a custom registry, keeping default Go collector
// noise out of /healthz.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gridiron",
		subsystem:        "trades",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.analysesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_total",
		Help:      "Total number of trade analyses run",
	})
	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_duration_milliseconds",
		Help:      "Histogram of end-to-end trade analysis duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.tradesEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_evaluated_total",
		Help:      "Total number of candidate trades evaluated",
	})
	m.tradesAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "proposals_accepted_total",
		Help:      "Total number of candidate trades meeting the improvement threshold",
	})

	m.resolverHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "resolver",
		Name:      "matches_total",
		Help:      "Total number of players resolved to a projection record",
	})
	m.resolverMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "resolver",
		Name:      "misses_total",
		Help:      "Total number of players with no acceptable projection match",
	})

	m.projectionCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "projections",
		Help:      "Number of projection records currently stored",
	})
	m.rosterCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "rosters",
		Help:      "Number of registered league rosters",
	})
	m.cachePurged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "cache_entries_purged_total",
		Help:      "Total number of expired cache entries removed",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the custom registry for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordAnalysis counts one completed analysis and its duration.
func RecordAnalysis(durationMs float64) {
	globalManager.analysesTotal.Inc()
	globalManager.analysisDuration.Observe(durationMs)
}

// RecordTradeEvaluated counts one evaluated candidate trade.
func RecordTradeEvaluated() {
	globalManager.tradesEvaluated.Inc()
}

// RecordTradeAccepted counts one accepted proposal.
func RecordTradeAccepted() {
	globalManager.tradesAccepted.Inc()
}

// RecordResolverHit counts one resolved player link.
func RecordResolverHit() {
	globalManager.resolverHits.Inc()
}

// RecordResolverMiss counts one unresolved player.
func RecordResolverMiss() {
	globalManager.resolverMisses.Inc()
}

// UpdateProjectionCount sets the stored projection gauge.
func UpdateProjectionCount(n int) {
	globalManager.projectionCount.Set(float64(n))
}

// UpdateRosterCount sets the registered roster gauge.
func UpdateRosterCount(n int) {
	globalManager.rosterCount.Set(float64(n))
}

// RecordCachePurge counts purged cache entries.
func RecordCachePurge(n int64) {
	if n > 0 {
		globalManager.cachePurged.Add(float64(n))
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}
