package config

import (
	"runtime"
	"time"
)

// DefaultConfigFile is read when no --config flag is given. It is optional.
const DefaultConfigFile = "mmcfg.yaml"

// Default values for configuration fields.
const (
	// Validate defaults
	DefaultValidateFormat      = "auto"
	DefaultValidateMaxFileSize = int64(10 * 1024 * 1024) // 10MB

	// Logging defaults
	DefaultLoggingLevel  = "warn"
	DefaultLoggingFormat = "text"

	// Metrics defaults
	DefaultMetricsAddress   = ":9464"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "mmcfg"

	// History defaults
	DefaultHistoryDriver      = "sqlite"
	DefaultHistoryPath        = "mmcfg-history.db"
	DefaultHistoryRetention   = 30 * 24 * time.Hour
	DefaultHistoryBusyTimeout = 5 * time.Second

	// Watch defaults
	DefaultWatchDebounce = 250 * time.Millisecond
)

// DefaultExtensions are searched for when validating a directory.
var DefaultExtensions = []string{".cfg"}

// DefaultDurationBuckets suit parse times of single patch files.
var DefaultDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Validate defaults
	if len(cfg.Validate.Extensions) == 0 {
		cfg.Validate.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if cfg.Validate.Format == "" {
		cfg.Validate.Format = DefaultValidateFormat
	}
	if cfg.Validate.Jobs == 0 {
		cfg.Validate.Jobs = runtime.NumCPU()
	}
	if cfg.Validate.MaxFileSize == 0 {
		cfg.Validate.MaxFileSize = DefaultValidateMaxFileSize
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = DefaultMetricsAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	// History defaults
	if cfg.History.Driver == "" {
		cfg.History.Driver = DefaultHistoryDriver
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.Retention == 0 {
		cfg.History.Retention = DefaultHistoryRetention
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}
