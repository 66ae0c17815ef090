package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func startWatcher(t *testing.T, config Config) <-chan []string {
	t.Helper()

	w, err := NewWatcher(config, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(_ context.Context, paths []string) {
			batches <- paths
		})
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	})

	// Give the watcher time to register its paths.
	deadline := time.Now().Add(2 * time.Second)
	for len(w.watcher.WatchList()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case paths := <-batches:
		return paths
	case <-time.After(3 * time.Second):
		t.Fatal("no change batch received")
		return nil
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewWatcher_NoPaths(t *testing.T) {
	if _, err := NewWatcher(Config{}, nil); err == nil {
		t.Error("NewWatcher() error = nil, want error")
	}
}

func TestWatcher_Directory(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, Config{
		Paths:      []string{dir},
		Debounce:   50 * time.Millisecond,
		Extensions: []string{".cfg"},
		SkipHidden: true,
	})

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden.cfg"), "ignored")
	writeFile(t, filepath.Join(dir, "parts.CFG"), "PART {}")

	got := waitBatch(t, batches)
	if want := []string{filepath.Join(dir, "parts.CFG")}; !slices.Equal(got, want) {
		t.Errorf("batch = %v, want %v", got, want)
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, Config{
		Paths:      []string{dir},
		Debounce:   50 * time.Millisecond,
		Extensions: []string{".cfg"},
	})

	sub := filepath.Join(dir, "Mod")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	// The new directory is registered asynchronously; keep writing until a
	// batch for the nested file arrives.
	target := filepath.Join(sub, "patch.cfg")
	deadline := time.After(3 * time.Second)
	for {
		writeFile(t, target, "@PART[*] {}")
		select {
		case paths := <-batches:
			if slices.Contains(paths, target) {
				return
			}
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatal("no batch for file in new subdirectory")
		}
	}
}

func TestWatcher_AlreadyRunning(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(Config{Paths: []string{dir}, Debounce: time.Millisecond}, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, func(context.Context, []string) {}) }()

	deadline := time.Now().Add(2 * time.Second)
	for len(w.watcher.WatchList()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	if err := w.Watch(ctx, func(context.Context, []string) {}); err == nil {
		t.Error("second Watch() error = nil, want error")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestWatcher_MissingPath(t *testing.T) {
	w, err := NewWatcher(Config{Paths: []string{filepath.Join(t.TempDir(), "missing")}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(context.Background(), func(context.Context, []string) {}); err == nil {
		t.Error("Watch() error = nil, want error for missing path")
	}
}

func TestWatcher_Matches(t *testing.T) {
	w := &Watcher{config: Config{Extensions: []string{".cfg"}}}
	tests := []struct {
		path string
		want bool
	}{
		{"a.cfg", true},
		{"a.CFG", true},
		{"a.cfg.bak", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := w.matches(tt.path); got != tt.want {
			t.Errorf("matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	w.config.Extensions = nil
	if !w.matches("anything") {
		t.Error("matches() with no extensions = false, want true")
	}
}
