package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kpi_dashboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kpi_dashboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	datasetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kpi_dashboard_dataset_loads_total",
			Help: "Loads of the reporting view, by outcome",
		},
		[]string{"status"},
	)

	cacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kpi_dashboard_cache_hits_total",
			Help: "Dataset requests served from the cache",
		},
	)

	cachedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kpi_dashboard_cached_rows",
			Help: "Rows currently held in the dataset cache",
		},
	)

	seedRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seed_script_runs_total",
			Help: "Seed script sequence runs, by outcome",
		},
		[]string{"status"},
	)
)

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordDatasetLoad counts one load of the reporting view.
func RecordDatasetLoad(success bool, rows int) {
	datasetLoads.WithLabelValues(outcome(success)).Inc()
	if success {
		cachedRows.Set(float64(rows))
	}
}

// RecordCacheHit counts a dataset request served without touching the database.
func RecordCacheHit() {
	cacheHits.Inc()
}

// RecordCacheCleared resets the cached row gauge.
func RecordCacheCleared() {
	cachedRows.Set(0)
}

// RecordSeedRun counts one run of the seed script sequence.
func RecordSeedRun(success bool) {
	seedRuns.WithLabelValues(outcome(success)).Inc()
}
