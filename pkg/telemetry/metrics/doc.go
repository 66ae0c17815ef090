// Package metrics provides Prometheus metrics collection for the mmcfg
// tools.
//
// # Metrics
//
//   - mmcfg_files_parsed_total{result}: files parsed, by "ok" or "error"
//   - mmcfg_parse_duration_seconds: per-file parse duration
//   - mmcfg_lint_warnings_total{rule}: lint warnings, by rule
//   - mmcfg_runs_total: validation runs
//   - mmcfg_last_run_failures, mmcfg_last_run_timestamp_seconds
//   - mmcfg_watched_files: files tracked by the watcher
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	collector.RecordParse(err == nil, time.Since(start))
//
//	mux := http.NewServeMux()
//	collector.Mount(mux, cfg.Metrics.Path)
//	go metrics.Serve(ctx, cfg.Metrics.Address, mux)
//
// The namespace prefix comes from metrics.namespace in the configuration.
package metrics
