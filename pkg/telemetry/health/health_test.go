package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"
)

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		want   string
	}{
		{
			name: "no checks",
			want: StatusReady,
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"history": func(context.Context) error { return nil },
				"watcher": func(context.Context) error { return nil },
			},
			want: StatusReady,
		},
		{
			name: "one unhealthy",
			checks: map[string]CheckFunc{
				"history": func(context.Context) error { return errors.New("database is locked") },
				"watcher": func(context.Context) error { return nil },
			},
			want: StatusDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(time.Second)
			for name, check := range tt.checks {
				c.RegisterCheck(name, check)
			}

			status := c.CheckReadiness(context.Background())
			if status.Status != tt.want {
				t.Errorf("Status = %q, want %q", status.Status, tt.want)
			}
			if len(status.Checks) != len(tt.checks) {
				t.Errorf("len(Checks) = %d, want %d", len(status.Checks), len(tt.checks))
			}
		})
	}
}

func TestCheckReadiness_Timeout(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.RegisterCheck("slow", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
		}
		return nil
	})

	status := c.CheckReadiness(context.Background())
	result := status.Checks["slow"]
	if result.Status != StatusUnhealthy || result.Message != ErrCheckTimeout.Error() {
		t.Errorf("slow = %+v, want timeout", result)
	}
}

func TestListChecks(t *testing.T) {
	c := New(0)
	c.RegisterCheck("watcher", func(context.Context) error { return nil })
	c.RegisterCheck("history", func(context.Context) error { return nil })
	c.RegisterCheck("history", func(context.Context) error { return nil })

	if got, want := c.ListChecks(), []string{"history", "watcher"}; !slices.Equal(got, want) {
		t.Errorf("ListChecks() = %v, want %v", got, want)
	}
}

func TestMount(t *testing.T) {
	c := New(time.Second)
	c.RegisterCheck("history", func(context.Context) error { return errors.New("closed") })

	mux := http.NewServeMux()
	c.Mount(mux, VersionInfo{Version: "1.2.3", Commit: "abc123"})

	tests := []struct {
		method string
		path   string
		code   int
		status string
	}{
		{http.MethodGet, LivenessPath, http.StatusOK, StatusOK},
		{http.MethodGet, ReadinessPath, http.StatusServiceUnavailable, StatusDegraded},
		{http.MethodPost, LivenessPath, http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.code {
				t.Fatalf("code = %d, want %d", rec.Code, tt.code)
			}
			if tt.status == "" {
				return
			}
			var body HealthStatus
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Status != tt.status {
				t.Errorf("status = %q, want %q", body.Status, tt.status)
			}
		})
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, VersionPath, nil))
	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" || info.GoVersion == "" {
		t.Errorf("version = %+v", info)
	}
}
