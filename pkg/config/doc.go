// Package config provides configuration management for the mmcfg tools.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("mmcfg.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("mmcfg.yaml")
//
// With an empty path LoadConfigWithEnvOverrides reads mmcfg.yaml from the
// working directory when it exists and falls back to the defaults.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention MMCFG_SECTION_FIELD.
// For example:
//
//   - MMCFG_VALIDATE_FORMAT overrides validate.format
//   - MMCFG_MODS overrides mods (comma-separated)
//   - MMCFG_HISTORY_ENABLED overrides history.enabled
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	validate:
//	  extensions: [".cfg"]
//	  format: auto
//	  jobs: 8
//	  strict: false
//	mods: [ModuleManager, RealFuels]
//	logging:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  address: ":9464"
//	history:
//	  enabled: true
//	  driver: sqlite
//	  path: mmcfg-history.db
//	  retention: 720h
//	watch:
//	  debounce: 250ms
//	  rescan: "*/15 * * * *"
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton:
//
//	if err := config.Initialize(path); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
package config
