// Package metrics exposes Prometheus collectors for the harvester service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	harvesterJobsTotal        *prometheus.CounterVec
	harvesterPagesTotal       *prometheus.CounterVec
	harvesterDetailRetries    prometheus.Counter
	harvesterActiveIndustries prometheus.Gauge
	harvesterRunSeconds       prometheus.Histogram

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		harvesterJobsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvester_jobs_total",
				Help: "Total number of job tasks processed, labeled by status.",
			},
			[]string{"status"},
		)

		harvesterPagesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harvester_pages_total",
				Help: "Total number of search pages fetched, labeled by industry and status.",
			},
			[]string{"industry", "status"},
		)

		harvesterDetailRetries = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "harvester_detail_retries_total",
				Help: "Total detail-page fetch attempts that were retried.",
			},
		)

		harvesterActiveIndustries = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "harvester_active_industries",
				Help: "Number of industry walks currently executing.",
			},
		)

		harvesterRunSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "harvester_run_duration_seconds",
				Help:    "Histogram of full harvest run durations.",
				Buckets: []float64{10, 30, 60, 120, 300, 600, 1800},
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveJob increments the job counter for the given status.
func ObserveJob(status string) {
	harvesterJobsTotal.WithLabelValues(status).Inc()
}

// ObservePage increments the page counter for the given industry and status.
func ObservePage(industry, status string) {
	harvesterPagesTotal.WithLabelValues(industry, status).Inc()
}

// ObserveDetailRetry counts one retried detail-page attempt.
func ObserveDetailRetry() {
	harvesterDetailRetries.Inc()
}

// IncActiveIndustries increments the active industry walk gauge.
func IncActiveIndustries() {
	harvesterActiveIndustries.Inc()
}

// DecActiveIndustries decrements the active industry walk gauge.
func DecActiveIndustries() {
	harvesterActiveIndustries.Dec()
}

// ObserveRunDuration records the duration of a completed harvest run.
func ObserveRunDuration(d time.Duration) {
	harvesterRunSeconds.Observe(d.Seconds())
}
