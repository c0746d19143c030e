package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the AirTracker backend
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Feed Metrics
	FeedFetchesTotal  prometheus.CounterVec
	FeedFetchDuration prometheus.HistogramVec
	FeedAircraftSeen  prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Ingestion Metrics
	IngestCycleDuration  prometheus.Histogram
	IngestCyclesTotal    prometheus.CounterVec
	AircraftTracked      prometheus.Gauge
	PositionsStoredTotal prometheus.Counter
	PositionsPrunedTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airtracker_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airtracker_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airtracker_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		FeedFetchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airtracker_feed_fetches_total",
				Help: "Total feed fetch attempts by feed name and outcome",
			},
			[]string{"feed", "outcome"},
		),
		FeedFetchDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airtracker_feed_fetch_duration_seconds",
				Help:    "Feed fetch latency in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"feed"},
		),
		FeedAircraftSeen: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airtracker_feed_aircraft_seen",
				Help: "Aircraft returned by the last fetch of each feed",
			},
			[]string{"feed"},
		),

		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airtracker_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airtracker_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		IngestCycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "airtracker_ingest_cycle_duration_seconds",
				Help:    "Ingestion cycle execution time in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),
		IngestCyclesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airtracker_ingest_cycles_total",
				Help: "Total ingestion cycles by outcome (ok, error, skipped)",
			},
			[]string{"outcome"},
		),
		AircraftTracked: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "airtracker_aircraft_tracked",
				Help: "Spanish-registered aircraft seen in the last ingestion cycle",
			},
		),
		PositionsStoredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "airtracker_positions_stored_total",
				Help: "Total position samples written to the database",
			},
		),
		PositionsPrunedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "airtracker_positions_pruned_total",
				Help: "Total position samples removed by retention cleanup",
			},
		),
	}
}
