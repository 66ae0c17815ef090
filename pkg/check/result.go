package check

import (
	"errors"
	"time"

	"kspmm/mmcfg/pkg/history"
	"kspmm/mmcfg/pkg/mmcfg/ast"
	mmerrors "kspmm/mmcfg/pkg/mmcfg/errors"
	"kspmm/mmcfg/pkg/mmcfg/lint"
)

// FileResult is the outcome of validating one file.
type FileResult struct {
	Path     string
	Document *ast.Document // nil when the file did not parse
	Warnings []lint.Warning
	Err      error // syntax, I/O or strict lint failure
	Duration time.Duration
}

// Failed reports whether the file failed validation.
func (r *FileResult) Failed() bool {
	return r.Err != nil
}

// SyntaxError returns the file's syntax error, if that is why it failed.
func (r *FileResult) SyntaxError() *mmerrors.SyntaxError {
	var syntaxErr *mmerrors.SyntaxError
	if errors.As(r.Err, &syntaxErr) {
		return syntaxErr
	}
	return nil
}

// Location returns where the failure was found. It is the zero Location
// for I/O errors.
func (r *FileResult) Location() ast.Location {
	if syntaxErr := r.SyntaxError(); syntaxErr != nil {
		return syntaxErr.Location
	}
	var strictErr *lint.StrictError
	if errors.As(r.Err, &strictErr) && len(strictErr.Warnings) > 0 {
		return strictErr.Warnings[0].Location
	}
	return ast.Location{File: r.Path}
}

// Message returns the failure message without its location.
func (r *FileResult) Message() string {
	if r.Err == nil {
		return ""
	}
	if syntaxErr := r.SyntaxError(); syntaxErr != nil {
		return syntaxErr.Message
	}
	var strictErr *lint.StrictError
	if errors.As(r.Err, &strictErr) && len(strictErr.Warnings) > 0 {
		w := strictErr.Warnings[0]
		return w.Message + " [" + w.Rule + "]"
	}
	return r.Err.Error()
}

// Summary counts the results of a run.
type Summary struct {
	Files    int `json:"files"`
	Failures int `json:"failures"`
	Warnings int `json:"warnings"`
}

// Report is the outcome of one validation run. Files are in the order
// they were given to Run.
type Report struct {
	Files      []*FileResult
	Strict     bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// Summary counts files, failing files and warnings.
func (r *Report) Summary() Summary {
	s := Summary{Files: len(r.Files)}
	for _, f := range r.Files {
		if f.Failed() {
			s.Failures++
		}
		s.Warnings += len(f.Warnings)
	}
	return s
}

// OK reports whether every file passed.
func (r *Report) OK() bool {
	return r.Summary().Failures == 0
}

// Failures returns the failing files.
func (r *Report) Failures() []*FileResult {
	var failed []*FileResult
	for _, f := range r.Files {
		if f.Failed() {
			failed = append(failed, f)
		}
	}
	return failed
}

// HistoryRun converts the report into a run for the history store.
func (r *Report) HistoryRun(id string) *history.Run {
	s := r.Summary()
	run := &history.Run{
		ID:         id,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Files:      s.Files,
		Failures:   s.Failures,
		Warnings:   s.Warnings,
	}
	for _, f := range r.Failures() {
		loc := f.Location()
		run.Details = append(run.Details, history.Failure{
			Path:    f.Path,
			Line:    loc.Line,
			Column:  loc.Column,
			Message: f.Message(),
		})
	}
	return run
}
