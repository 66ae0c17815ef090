package metrics

import (
	"time"

	"kspmm/mmcfg/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for files_parsed_total.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector is the main orchestrator for the Prometheus metrics of the
// mmcfg tools. It manages metric registration and provides a unified
// interface for recording parse, lint and run metrics.
//
// A disabled collector accepts every call and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Per-file parse metrics
	parseMetrics *ParseMetrics

	// Lint warning metrics
	lintMetrics *LintMetrics

	// Validation run metrics
	runMetrics *RunMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "mmcfg",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.lintMetrics = NewLintMetrics(cfg, registry)
	c.runMetrics = NewRunMetrics(cfg, registry)

	return c
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordParse records the outcome and duration of parsing one file.
//
// Example:
//
//	start := time.Now()
//	_, err := p.Parse(path)
//	collector.RecordParse(err == nil, time.Since(start))
func (c *Collector) RecordParse(ok bool, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	result := ResultOK
	if !ok {
		result = ResultError
	}
	c.parseMetrics.RecordFile(result, duration)
}

// RecordLintWarning records one lint warning of rule.
func (c *Collector) RecordLintWarning(rule string) {
	if !c.config.Enabled {
		return
	}

	c.lintMetrics.RecordWarning(rule)
}

// RecordRun records a finished validation run over files with failures
// failing files.
func (c *Collector) RecordRun(files, failures int, finished time.Time) {
	if !c.config.Enabled {
		return
	}

	c.runMetrics.RecordRun(files, failures, finished)
}

// SetWatchedFiles sets the number of files the watcher tracks.
func (c *Collector) SetWatchedFiles(n int) {
	if !c.config.Enabled {
		return
	}

	c.runMetrics.SetWatchedFiles(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
