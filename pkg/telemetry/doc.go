// Package telemetry groups the observability packages of the mmcfg tools.
//
// # Components
//
//   - logging: structured logging on log/slog with run, command and file
//     fields taken from the context
//   - metrics: Prometheus counters and histograms for parsing, linting and
//     validation runs
//   - health: liveness and readiness endpoints for the watch command
//
// The parser packages never log or record metrics themselves; the command
// layer and the check runner do.
package telemetry
