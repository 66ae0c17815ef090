// Package health provides liveness, readiness and version endpoints for
// long-running mmcfg commands.
//
// The watch command serves them next to the Prometheus metrics endpoint:
//
//   - /healthz: the process is running
//   - /readyz: every registered check passes (history store reachable,
//     file watcher running)
//   - /version: build information
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("history", store.Ping)
//
//	mux := http.NewServeMux()
//	checker.Mount(mux, health.VersionInfo{Version: version})
package health
