package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"kspmm/mmcfg/pkg/check"
	"kspmm/mmcfg/pkg/cli"
	"kspmm/mmcfg/pkg/config"
	"kspmm/mmcfg/pkg/history"
	"kspmm/mmcfg/pkg/telemetry/health"
	"kspmm/mmcfg/pkg/telemetry/logging"
	"kspmm/mmcfg/pkg/telemetry/metrics"
	"kspmm/mmcfg/pkg/watch"
)

// healthCheckTimeout bounds each readiness check of the watch server.
const healthCheckTimeout = 2 * time.Second

var watchFlags struct {
	format  string
	jobs    int
	strict  bool
	disable string
}

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Revalidate patch files as they change",
	Long: `Validate patch files, then keep watching them and revalidate each file
when it changes.

Changes are debounced (watch.debounce, 250ms by default) so that a burst
of saves produces one run. A full rescan can be scheduled with a cron
expression in watch.rescan, and old history pruned with
history.prune_schedule.

When metrics are enabled the command serves Prometheus metrics together
with /healthz, /readyz and /version on metrics.address. The configuration
file is reloaded when it changes.

Examples:
  # Watch a mod while editing it
  mmcfg watch GameData/MyMod

  # Strict mode with pretty output
  mmcfg watch --strict --format pretty GameData/MyMod`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.format, "format", "f", "", "output format: auto, text, github, json, pretty (default from config)")
	watchCmd.Flags().IntVarP(&watchFlags.jobs, "jobs", "j", 0, "files parsed concurrently (default from config)")
	watchCmd.Flags().BoolVar(&watchFlags.strict, "strict", false, "treat lint warnings as errors")
	watchCmd.Flags().StringVar(&watchFlags.disable, "disable", "", "comma separated lint rules to skip")
}

// watchSession runs validations for the watch command. Runs are
// serialized so reports never interleave on the output.
type watchSession struct {
	app       *app
	paths     []string
	opts      runnerOptions
	formatter cli.Formatter
	store     history.Store

	mu     sync.Mutex
	runner *check.Runner
	runs   int
}

func newWatchSession(a *app, paths []string, opts runnerOptions, formatter cli.Formatter, store history.Store) *watchSession {
	return &watchSession{
		app:       a,
		paths:     paths,
		opts:      opts,
		formatter: formatter,
		store:     store,
		runner:    a.newRunner(opts),
	}
}

// checkAll discovers every file under the watched paths and validates
// them.
func (s *watchSession) checkAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := check.Discover(s.paths, s.app.cfg.Validate.Extensions)
	if err != nil {
		return err
	}
	s.app.metrics.SetWatchedFiles(len(files))
	return s.check(ctx, files)
}

// checkChanged validates the changed files that still exist.
func (s *watchSession) checkChanged(ctx context.Context, paths []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var files []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			s.app.logger.DebugContext(ctx, "skipping removed file", "file", path)
			continue
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		return
	}

	if err := s.check(ctx, files); err != nil && ctx.Err() == nil {
		s.app.logger.ErrorContext(ctx, "revalidation failed", "error", err)
	}
}

// check runs one validation. The caller holds s.mu.
func (s *watchSession) check(ctx context.Context, files []string) error {
	ctx = logging.WithRunID(ctx, uuid.NewString())

	report, err := s.runner.Run(ctx, files)
	if err != nil {
		return err
	}
	s.runs++

	if err := s.formatter.FormatReport(s.app.out, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	s.app.recordRun(ctx, s.store, report)

	summary := report.Summary()
	s.app.logger.InfoContext(ctx, "validation finished",
		"files", summary.Files,
		"failures", summary.Failures,
		"warnings", summary.Warnings,
	)
	return nil
}

// reload rereads the configuration file and rebuilds the runner. A file
// that fails to load or validate leaves the current settings in place.
func (s *watchSession) reload(ctx context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := config.ReloadConfig(path); err != nil {
		s.app.logger.ErrorContext(ctx, "configuration reload failed", "config", path, "error", err)
		return
	}
	s.app.cfg = config.MustGetConfig()
	s.runner = s.app.newRunner(s.opts)
	s.app.logger.InfoContext(ctx, "configuration reloaded", "config", path)
}

// Runs returns the number of completed validation runs.
func (s *watchSession) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	formatter, err := a.formatter(watchFlags.format)
	if err != nil {
		return err
	}

	store, err := a.openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	paths := defaultPaths(args)
	session := newWatchSession(a, paths, runnerOptions{
		jobs:     watchFlags.jobs,
		strict:   watchFlags.strict,
		disabled: splitList(watchFlags.disable),
	}, formatter, store)

	if err := session.checkAll(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	watcher, err := watch.NewWatcher(watch.Config{
		Paths:      paths,
		Debounce:   a.cfg.Watch.Debounce,
		Extensions: a.cfg.Validate.Extensions,
		SkipHidden: true,
	}, a.logger.Slog())
	if err != nil {
		return err
	}

	var configWatcher *watch.Watcher
	configPath := configFilePath()
	if configPath != "" {
		configWatcher, err = watch.NewWatcher(watch.Config{
			Paths:    []string{configPath},
			Debounce: a.cfg.Watch.Debounce,
		}, a.logger.Slog())
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	scheduler := watch.NewScheduler(a.logger.Slog())
	if err := scheduler.AddJob(gctx, "rescan", a.cfg.Watch.Rescan, session.checkAll); err != nil {
		return cli.NewConfigError("watch.rescan", err.Error())
	}
	if store != nil {
		pruner := history.NewPruner(store, a.cfg.History.Retention)
		err := scheduler.AddJob(gctx, "prune", a.cfg.History.PruneSchedule, func(ctx context.Context) error {
			_, err := pruner.Prune(ctx)
			return err
		})
		if err != nil {
			return cli.NewConfigError("history.prune_schedule", err.Error())
		}
	}

	g.Go(func() error {
		return watcher.Watch(gctx, session.checkChanged)
	})

	if configWatcher != nil {
		g.Go(func() error {
			return configWatcher.Watch(gctx, func(ctx context.Context, _ []string) {
				session.reload(ctx, configPath)
			})
		})
	}

	if a.cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		a.metrics.Mount(mux, a.cfg.Metrics.Path)

		checker := health.New(healthCheckTimeout)
		checker.RegisterCheck("watcher", func(ctx context.Context) error {
			if len(watcher.WatchList()) == 0 {
				return errors.New("no paths watched")
			}
			return nil
		})
		if store != nil {
			checker.RegisterCheck("history", store.Ping)
		}
		checker.Mount(mux, versionInfo())

		a.logger.InfoContext(ctx, "serving metrics", "address", a.cfg.Metrics.Address, "path", a.cfg.Metrics.Path)
		g.Go(func() error {
			return metrics.Serve(gctx, a.cfg.Metrics.Address, mux)
		})
	}

	if scheduler.Jobs() > 0 {
		if err := scheduler.Start(gctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	err = g.Wait()
	a.logger.InfoContext(ctx, "watch stopped", "runs", session.Runs())
	return err
}

// configFilePath returns the configuration file to reload on change,
// or "" when running on defaults.
func configFilePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(config.DefaultConfigFile); err == nil {
		return config.DefaultConfigFile
	}
	return ""
}

func versionInfo() health.VersionInfo {
	return health.VersionInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}
