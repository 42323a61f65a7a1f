package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabular_pipeline_runs_total",
		Help: "Pipeline runs by terminal status.",
	}, []string{"status"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tabular_pipeline_run_duration_seconds",
		Help:    "Wall-clock duration of whole pipeline runs.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	stepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tabular_pipeline_step_duration_seconds",
		Help:    "Wall-clock duration of individual transformation steps.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"transformation"})

	rowsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabular_pipeline_rows_processed_total",
		Help: "Rows in final materialized tables.",
	})
)

func RecordRun(status string, seconds float64) {
	runsTotal.WithLabelValues(status).Inc()
	runDuration.Observe(seconds)
}

func RecordStep(name string, seconds float64) {
	stepDuration.WithLabelValues(name).Observe(seconds)
}

func AddRowsProcessed(n int) {
	rowsProcessed.Add(float64(n))
}

// Expose serves the metrics endpoint on its own port.
func Expose(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}()
}
