// Package logging provides structured logging for the mmcfg tools.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Context-aware logging with run IDs, command names and file paths
//   - Configurable log levels (debug, info, warn, error)
//
// Logs go to stderr by default; command results go to stdout.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	})
//
//	logger.Info("validation finished", "files", 12, "failures", 0)
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithFile(ctx, "GameData/MyMod/patch.cfg")
//	logger.WarnContext(ctx, "lint warning", "rule", "multiple-passes")
package logging
