package check

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"kspmm/mmcfg/pkg/mmcfg/lint"
	"kspmm/mmcfg/pkg/mmcfg/parser"
	"kspmm/mmcfg/pkg/telemetry/logging"
	"kspmm/mmcfg/pkg/telemetry/metrics"
)

// Runner parses and lints files concurrently.
// A Runner is safe for concurrent use.
type Runner struct {
	parser  *parser.Parser
	linter  *lint.Linter
	jobs    int
	metrics *metrics.Collector
	logger  *logging.Logger
	now     func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithJobs sets how many files are parsed at once. Values below 1 mean 1.
func WithJobs(jobs int) Option {
	return func(r *Runner) { r.jobs = max(jobs, 1) }
}

// WithMetrics records parse, lint and run metrics on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(r *Runner) { r.metrics = collector }
}

// WithLogger sets the logger used for per-file debug output.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a runner using p to parse and l to lint.
func NewRunner(p *parser.Parser, l *lint.Linter, opts ...Option) *Runner {
	r := &Runner{
		parser: p,
		linter: l,
		jobs:   1,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates files and returns a report in the order of files. It
// stops early only when ctx is cancelled, in which case the report covers
// the files finished so far and the context error is returned.
func (r *Runner) Run(ctx context.Context, files []string) (*Report, error) {
	report := &Report{
		Files:     make([]*FileResult, len(files)),
		Strict:    r.linter.Strict(),
		StartedAt: r.now(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Files[i] = r.checkFile(logging.WithFile(gctx, path), path)
			return nil
		})
	}

	err := g.Wait()
	report.FinishedAt = r.now()

	if err != nil {
		report.Files = compact(report.Files)
		return report, err
	}

	if r.metrics != nil {
		s := report.Summary()
		r.metrics.RecordRun(s.Files, s.Failures, report.FinishedAt)
	}
	return report, nil
}

func (r *Runner) checkFile(ctx context.Context, path string) *FileResult {
	start := time.Now()
	result := &FileResult{Path: path}

	doc, err := r.parser.Parse(path)
	result.Duration = time.Since(start)
	if r.metrics != nil {
		r.metrics.RecordParse(err == nil, result.Duration)
	}
	if err != nil {
		result.Err = err
		r.logger.DebugContext(ctx, "file failed to parse", "error", err)
		return result
	}

	result.Document = doc
	result.Warnings, result.Err = r.linter.Check(doc)

	if r.metrics != nil {
		for _, w := range result.Warnings {
			r.metrics.RecordLintWarning(w.Rule)
		}
	}

	r.logger.DebugContext(ctx, "file checked",
		"nodes", len(doc.Nodes),
		"warnings", len(result.Warnings),
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result
}

func compact(results []*FileResult) []*FileResult {
	kept := results[:0]
	for _, r := range results {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return kept
}
