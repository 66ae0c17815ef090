package metrics

import (
	"time"

	"kspmm/mmcfg/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics tracks whole validation runs.
//
// Metrics:
//   - mmcfg_runs_total: Validation runs completed
//   - mmcfg_last_run_failures: Failing files in the latest run
//   - mmcfg_last_run_timestamp_seconds: Unix time the latest run finished
//   - mmcfg_watched_files: Files tracked by the watcher
type RunMetrics struct {
	runsTotal        prometheus.Counter
	lastRunFailures  prometheus.Gauge
	lastRunTimestamp prometheus.Gauge
	watchedFiles     prometheus.Gauge
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_total",
			Help:      "Total number of validation runs",
		}),
		lastRunFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "last_run_failures",
			Help:      "Number of files that failed in the latest run",
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the latest run finished",
		}),
		watchedFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "watched_files",
			Help:      "Number of patch files tracked by the watcher",
		}),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.lastRunFailures,
		rm.lastRunTimestamp,
		rm.watchedFiles,
	)

	return rm
}

// RecordRun records a finished run.
func (rm *RunMetrics) RecordRun(files, failures int, finished time.Time) {
	rm.runsTotal.Inc()
	rm.lastRunFailures.Set(float64(failures))
	rm.lastRunTimestamp.Set(float64(finished.Unix()))
}

// SetWatchedFiles sets the watched file gauge.
func (rm *RunMetrics) SetWatchedFiles(n int) {
	rm.watchedFiles.Set(float64(n))
}
