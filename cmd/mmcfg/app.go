package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"kspmm/mmcfg/pkg/check"
	"kspmm/mmcfg/pkg/cli"
	"kspmm/mmcfg/pkg/config"
	"kspmm/mmcfg/pkg/history"
	"kspmm/mmcfg/pkg/mmcfg/lint"
	"kspmm/mmcfg/pkg/mmcfg/parser"
	"kspmm/mmcfg/pkg/telemetry/logging"
	"kspmm/mmcfg/pkg/telemetry/metrics"
)

// app holds what every command needs: the configuration, a logger and
// the metrics collector.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	out     io.Writer
	errOut  io.Writer
}

// setup loads configuration and builds the logger for cmd. The returned
// context carries a fresh run ID and the command name for log records.
func setup(cmd *cobra.Command) (*app, context.Context, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logCfg := logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	}
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, cli.NewConfigError("logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Metrics, prometheus.NewRegistry()),
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, uuid.NewString())
	ctx = logging.WithCommand(ctx, cmd.Name())

	logger.DebugContext(ctx, "configuration loaded", "config", configSource())
	return a, ctx, nil
}

// loadConfig returns the process configuration, loading it on first use.
func loadConfig() (*config.Config, error) {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg, nil
	}
	if err := config.Initialize(cfgFile); err != nil {
		return nil, err
	}
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, errors.New("configuration not initialized")
	}
	return cfg, nil
}

func configSource() string {
	if path := configFilePath(); path != "" {
		return path
	}
	return "defaults"
}

// runnerOptions are the per-invocation overrides of the validate settings.
type runnerOptions struct {
	jobs     int
	strict   bool
	disabled []string
}

// newRunner builds a check runner from configuration and flag overrides.
func (a *app) newRunner(opts runnerOptions) *check.Runner {
	jobs := a.cfg.Validate.Jobs
	if opts.jobs > 0 {
		jobs = opts.jobs
	}

	linter := lint.NewLinter(
		lint.WithStrict(a.cfg.Validate.Strict || opts.strict),
		lint.WithDisabled(slices.Concat(a.cfg.Validate.DisabledRules, opts.disabled)...),
	)
	p := parser.NewParser().WithMaxFileSize(a.cfg.Validate.MaxFileSize)

	return check.NewRunner(p, linter,
		check.WithJobs(jobs),
		check.WithMetrics(a.metrics),
		check.WithLogger(a.logger),
	)
}

// formatter resolves the output format from the flag, falling back to
// configuration.
func (a *app) formatter(flag string) (cli.Formatter, error) {
	name := a.cfg.Validate.Format
	if flag != "" {
		name = flag
	}
	format, err := cli.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	format = cli.ResolveFormat(format, os.LookupEnv)

	f := cli.NewFormatter(format)
	if pretty, ok := f.(*cli.PrettyFormatter); ok {
		pretty.Color = colorEnabled(a.out)
	}
	return f, nil
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// recordRun stores report in the history database when history is
// enabled. Failures are logged, not returned: validation output is already
// written at this point.
func (a *app) recordRun(ctx context.Context, store history.Store, report *check.Report) {
	if store == nil {
		return
	}
	run := report.HistoryRun(logging.GetRunID(ctx))
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := store.Record(ctx, run); err != nil {
		a.logger.ErrorContext(ctx, "failed to record run", "error", err)
		return
	}
	a.logger.DebugContext(ctx, "run recorded", "history", a.cfg.History.Path)
}

// openHistory opens the history store when history is enabled, and
// returns nil otherwise.
func (a *app) openHistory() (history.Store, error) {
	if !a.cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(a.cfg.History)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return store, nil
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// defaultPaths returns args, or the working directory when args is empty.
func defaultPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
