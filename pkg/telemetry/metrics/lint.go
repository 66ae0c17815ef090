package metrics

import (
	"kspmm/mmcfg/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LintMetrics tracks lint warnings.
//
// Metrics:
//   - mmcfg_lint_warnings_total: Lint warnings by rule
type LintMetrics struct {
	warningsTotal *prometheus.CounterVec
}

// NewLintMetrics creates and registers lint metrics with the provided registry.
func NewLintMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LintMetrics {
	lm := &LintMetrics{
		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "lint_warnings_total",
				Help:      "Total number of lint warnings reported",
			},
			[]string{"rule"},
		),
	}

	registry.MustRegister(lm.warningsTotal)

	return lm
}

// RecordWarning records one warning of rule.
func (lm *LintMetrics) RecordWarning(rule string) {
	lm.warningsTotal.WithLabelValues(rule).Inc()
}
