package metrics

import (
	"time"

	"kspmm/mmcfg/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks metrics related to parsing patch files.
//
// Metrics:
//   - mmcfg_files_parsed_total: Files parsed by result ("ok", "error")
//   - mmcfg_parse_duration_seconds: Per-file parse duration histogram
type ParseMetrics struct {
	// Files parsed, by result
	filesTotal *prometheus.CounterVec

	// Parse duration histogram
	parseDuration prometheus.Histogram
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "files_parsed_total",
				Help:      "Total number of patch files parsed",
			},
			[]string{"result"},
		),

		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "parse_duration_seconds",
				Help:      "Duration of parsing a single patch file in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),
	}

	registry.MustRegister(
		pm.filesTotal,
		pm.parseDuration,
	)

	return pm
}

// RecordFile records one parsed file.
func (pm *ParseMetrics) RecordFile(result string, duration time.Duration) {
	pm.filesTotal.WithLabelValues(result).Inc()
	pm.parseDuration.Observe(duration.Seconds())
}
