package config

import (
	"fmt"
	"sync"
)

// process is the configuration shared by the mmcfg commands of one
// process. watch replaces cfg when the configuration file changes.
var process struct {
	mu   sync.RWMutex
	cfg  *Config
	once sync.Once
}

func store(cfg *Config) {
	process.mu.Lock()
	process.cfg = cfg
	process.mu.Unlock()
}

// Initialize loads path (or DefaultConfigFile when path is empty), applies
// the MMCFG_* environment overrides and publishes the result. Only the
// first call loads anything; later calls return nil.
func Initialize(path string) error {
	var err error
	process.once.Do(func() {
		var cfg *Config
		if cfg, err = LoadConfigWithEnvOverrides(path); err == nil {
			store(cfg)
		}
	})
	return err
}

// GetConfig returns the published configuration, or nil before a
// successful Initialize or SetConfig.
func GetConfig() *Config {
	process.mu.RLock()
	defer process.mu.RUnlock()
	return process.cfg
}

// MustGetConfig is GetConfig for callers that have just loaded the
// configuration. It panics if none is published.
func MustGetConfig() *Config {
	if cfg := GetConfig(); cfg != nil {
		return cfg
	}
	panic("config: no configuration loaded")
}

// SetConfig publishes cfg without reading any file. Tests use it to
// install a fixture; nil clears the configuration.
func SetConfig(cfg *Config) {
	store(cfg)
}

// ReloadConfig rereads path and publishes the new configuration. When
// loading or validation fails the published configuration is kept.
func ReloadConfig(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}
	store(cfg)
	return nil
}
