package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment variable override.
const EnvPrefix = "MMCFG_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention MMCFG_SECTION_FIELD (e.g., MMCFG_VALIDATE_FORMAT).
// Environment variables always take precedence over file-based configuration.
//
// An empty path means DefaultConfigFile, which may be missing; in that case
// the defaults are used. An explicitly named file must exist.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := loadOptional(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func loadOptional(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	cfg, err := LoadConfig(DefaultConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Malformed numbers, booleans and durations are ignored.
func applyEnvOverrides(cfg *Config) {
	// Validate overrides
	if val := getenv("VALIDATE_EXTENSIONS"); val != "" {
		cfg.Validate.Extensions = splitList(val)
	}
	if val := getenv("VALIDATE_FORMAT"); val != "" {
		cfg.Validate.Format = val
	}
	if val := getenv("VALIDATE_JOBS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Validate.Jobs = i
		}
	}
	if val := getenv("VALIDATE_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Validate.MaxFileSize = i
		}
	}
	if val := getenv("VALIDATE_STRICT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Validate.Strict = b
		}
	}

	// Mods override
	if val := getenv("MODS"); val != "" {
		cfg.Mods = splitList(val)
	}

	// Logging overrides
	if val := getenv("LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := getenv("LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	// Metrics overrides
	if val := getenv("METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := getenv("METRICS_ADDRESS"); val != "" {
		cfg.Metrics.Address = val
	}

	// History overrides
	if val := getenv("HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := getenv("HISTORY_DRIVER"); val != "" {
		cfg.History.Driver = val
	}
	if val := getenv("HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}
	if val := getenv("HISTORY_RETENTION"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.History.Retention = d
		}
	}

	// Watch overrides
	if val := getenv("WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
	if val := getenv("WATCH_RESCAN"); val != "" {
		cfg.Watch.Rescan = val
	}
}

func getenv(name string) string {
	return os.Getenv(EnvPrefix + name)
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(val string) []string {
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
