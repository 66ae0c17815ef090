package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config contains configuration for the file watcher.
type Config struct {
	// Paths are the files and directories to watch. Directories are
	// watched recursively, including directories created later.
	Paths []string

	// Debounce is the quiet period after the last event before changed
	// files are reported.
	Debounce time.Duration

	// Extensions limits events to files with these extensions. Matching
	// is case-insensitive.
	Extensions []string

	// SkipHidden ignores files and directories whose name starts with ".".
	SkipHidden bool
}

// Watcher reports changed configuration files.
type Watcher struct {
	config   Config
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce *Debouncer

	mu      sync.Mutex
	running bool
	changes chan []string
}

// NewWatcher creates a watcher. Nothing is watched until Watch is called.
func NewWatcher(config Config, logger *slog.Logger) (*Watcher, error) {
	if len(config.Paths) == 0 {
		return nil, errors.New("no paths to watch")
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger.With("component", "watch"),
		changes: make(chan []string, 1),
	}
	w.debounce = NewDebouncer(config.Debounce, w.emit)
	return w, nil
}

// emit queues a batch, merging it into one not yet consumed.
func (w *Watcher) emit(paths []string) {
	for {
		select {
		case w.changes <- paths:
			return
		default:
		}
		select {
		case queued := <-w.changes:
			paths = mergePaths(queued, paths)
		default:
		}
	}
}

// Watch blocks until ctx is cancelled, calling onChange with each batch
// of changed files. Batches are delivered one at a time from the calling
// goroutine.
func (w *Watcher) Watch(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.watcher.Close()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	for _, p := range w.config.Paths {
		if err := w.addPath(p); err != nil {
			return fmt.Errorf("failed to watch %q: %w", p, err)
		}
	}

	w.logger.Info("file watcher started",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped")
			return nil

		case paths := <-w.changes:
			onChange(ctx, paths)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// WatchList returns the paths currently registered with fsnotify.
func (w *Watcher) WatchList() []string {
	list := w.watcher.WatchList()
	slices.Sort(list)
	return list
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if w.config.SkipHidden && isHidden(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirectory(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !w.matches(event.Name) {
		return
	}

	w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
	w.debounce.Trigger(event.Name)
}

// addPath watches a file directly or a directory tree.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return w.addDirectory(path)
	}
	return w.watcher.Add(path)
}

// addDirectory watches dir and all of its subdirectories.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.config.SkipHidden && path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) matches(path string) bool {
	if len(w.config.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range w.config.Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func mergePaths(a, b []string) []string {
	merged := slices.Concat(a, b)
	slices.Sort(merged)
	return slices.Compact(merged)
}
