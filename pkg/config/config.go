package config

import "time"

// Config is the root configuration structure for the mmcfg tools.
type Config struct {
	// Validate controls how patch files are discovered, parsed and linted.
	Validate ValidateConfig `yaml:"validate"`

	// Mods lists the installed capability names :NEEDS clauses are
	// evaluated against.
	Mods []string `yaml:"mods"`

	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// History contains run history storage configuration.
	History HistoryConfig `yaml:"history"`

	// Watch contains configuration for the watch command.
	Watch WatchConfig `yaml:"watch"`
}

// ValidateConfig contains configuration for the validate command.
type ValidateConfig struct {
	// Extensions are the file extensions searched for when a directory is
	// given. Matching is case-insensitive.
	// Default: [".cfg"]
	Extensions []string `yaml:"extensions"`

	// Format is the output format.
	// Options: "auto", "text", "github", "json", "pretty"
	// Default: "auto"
	Format string `yaml:"format"`

	// Jobs is the number of files parsed concurrently.
	// Default: runtime.NumCPU()
	Jobs int `yaml:"jobs"`

	// MaxFileSize is the largest file, in bytes, the parser accepts.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// Strict turns lint warnings into failures.
	// Default: false
	Strict bool `yaml:"strict"`

	// DisabledRules lists lint rules that are not reported.
	DisabledRules []string `yaml:"disabled_rules"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Address is the listen address of the metrics endpoint.
	// Default: ":9464"
	Address string `yaml:"address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "mmcfg"
	Namespace string `yaml:"namespace"`

	// DurationBuckets defines histogram buckets for parse duration (seconds).
	// Default: [0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// HistoryConfig contains configuration for recording validation runs.
type HistoryConfig struct {
	// Enabled controls whether runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo), "memory"
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file path.
	// Default: "mmcfg-history.db"
	Path string `yaml:"path"`

	// Retention is how long runs are kept before pruning.
	// Default: 720h (30 days)
	Retention time.Duration `yaml:"retention"`

	// PruneSchedule is a cron expression for pruning while watching, for
	// example "0 3 * * *". Empty disables scheduled pruning.
	// Default: ""
	PruneSchedule string `yaml:"prune_schedule"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// WatchConfig contains configuration for the watch command.
type WatchConfig struct {
	// Debounce is how long to wait after the last change event before
	// revalidating.
	// Default: 250ms
	Debounce time.Duration `yaml:"debounce"`

	// Rescan is a cron expression for full rescans. Empty disables them.
	// Default: ""
	Rescan string `yaml:"rescan"`
}
