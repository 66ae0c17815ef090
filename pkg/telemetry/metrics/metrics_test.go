package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kspmm/mmcfg/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		DurationBuckets: []float64{0.001, 0.01, 0.1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if !collector.Enabled() {
		t.Error("Enabled() = false, want true")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if cfg.Namespace != "mmcfg" {
		t.Errorf("Namespace = %q, want mmcfg", cfg.Namespace)
	}
	collector.RecordRun(1, 0, time.Now())
	if got := testutil.ToFloat64(collector.runMetrics.runsTotal); got != 1 {
		t.Errorf("runs_total = %v, want 1", got)
	}
}

func TestCollector_RecordParse(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordParse(true, 2*time.Millisecond)
	collector.RecordParse(true, 3*time.Millisecond)
	collector.RecordParse(false, time.Millisecond)

	files := collector.parseMetrics.filesTotal
	if got := testutil.ToFloat64(files.WithLabelValues(ResultOK)); got != 2 {
		t.Errorf("files_parsed_total{result=ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(files.WithLabelValues(ResultError)); got != 1 {
		t.Errorf("files_parsed_total{result=error} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(collector.parseMetrics.parseDuration); got != 1 {
		t.Errorf("parse_duration_seconds series = %d, want 1", got)
	}
}

func TestCollector_RecordLintWarning(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordLintWarning("multiple-passes")
	collector.RecordLintWarning("multiple-passes")
	collector.RecordLintWarning("pass-on-child")

	warnings := collector.lintMetrics.warningsTotal
	if got := testutil.ToFloat64(warnings.WithLabelValues("multiple-passes")); got != 2 {
		t.Errorf("lint_warnings_total{rule=multiple-passes} = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(warnings); got != 2 {
		t.Errorf("lint_warnings_total series = %d, want 2", got)
	}
}

func TestCollector_RecordRun(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	finished := time.Unix(1700000000, 0)

	collector.RecordRun(10, 3, finished)
	collector.SetWatchedFiles(10)

	rm := collector.runMetrics
	if got := testutil.ToFloat64(rm.runsTotal); got != 1 {
		t.Errorf("runs_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.lastRunFailures); got != 3 {
		t.Errorf("last_run_failures = %v, want 3", got)
	}
	if got := testutil.ToFloat64(rm.lastRunTimestamp); got != 1700000000 {
		t.Errorf("last_run_timestamp_seconds = %v, want 1700000000", got)
	}
	if got := testutil.ToFloat64(rm.watchedFiles); got != 10 {
		t.Errorf("watched_files = %v, want 10", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordParse(true, time.Millisecond)
	collector.RecordLintWarning("multiple-passes")
	collector.RecordRun(1, 1, time.Now())

	if got := testutil.ToFloat64(collector.runMetrics.runsTotal); got != 0 {
		t.Errorf("runs_total = %v, want 0 when disabled", got)
	}
	if got := testutil.CollectAndCount(collector.lintMetrics.warningsTotal); got != 0 {
		t.Errorf("lint_warnings_total series = %d, want 0 when disabled", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordParse(false, time.Millisecond)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	if !strings.Contains(string(body), `test_files_parsed_total{result="error"} 1`) {
		t.Errorf("metrics output missing files_parsed_total:\n%s", body)
	}
}

func TestServe(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordRun(3, 1, time.Now())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	mux := http.NewServeMux()
	collector.Mount(mux, "/metrics")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, mux) }()

	var resp *http.Response
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err = http.Get("http://" + addr + "/metrics")
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "test_runs_total 1") {
		t.Errorf("metrics output missing runs_total:\n%s", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
