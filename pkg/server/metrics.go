package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the prediction server.
type Metrics struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	activeSearches prometheus.Gauge
	seedsChecked   prometheus.Counter
	matchesFound   prometheus.Counter

	wsConnections *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oracle_http_requests_total",
				Help: "Total number of HTTP requests processed by method, endpoint and status",
			},
			[]string{"method", "endpoint", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oracle_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		activeSearches: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "oracle_search_jobs_active",
				Help: "Number of search jobs currently running",
			},
		),

		seedsChecked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "oracle_seeds_checked_total",
				Help: "Total number of seeds evaluated across all search jobs",
			},
		),

		matchesFound: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "oracle_matches_found_total",
				Help: "Total number of matching seeds across all search jobs",
			},
		),

		wsConnections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oracle_ws_connections_total",
				Help: "WebSocket search connections by terminal status",
			},
			[]string{"status"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.activeSearches,
		m.seedsChecked,
		m.matchesFound,
		m.wsConnections,
	)
	return m
}

// Handler returns the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, endpoint, status string, seconds float64) {
	m.requestCount.WithLabelValues(method, endpoint, status).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}

// SearchStarted marks a job as running.
func (m *Metrics) SearchStarted() {
	m.activeSearches.Inc()
}

// SearchFinished folds a finished job's counters into the totals.
func (m *Metrics) SearchFinished(checked, found int64) {
	m.activeSearches.Dec()
	m.seedsChecked.Add(float64(checked))
	m.matchesFound.Add(float64(found))
}

// WSClosed records a websocket session ending with the given status.
func (m *Metrics) WSClosed(status string) {
	m.wsConnections.WithLabelValues(status).Inc()
}
