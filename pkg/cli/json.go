package cli

import (
	"io"

	"kspmm/mmcfg/pkg/check"
)

// JSONFormatter writes the whole report as one JSON document.
type JSONFormatter struct {
	Indent bool
}

type jsonReport struct {
	Files   []jsonFile    `json:"files"`
	Strict  bool          `json:"strict"`
	Summary check.Summary `json:"summary"`
}

type jsonFile struct {
	Path     string        `json:"path"`
	OK       bool          `json:"ok"`
	Error    *jsonError    `json:"error,omitempty"`
	Warnings []jsonWarning `json:"warnings,omitempty"`
}

type jsonError struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type jsonWarning struct {
	Rule       string `json:"rule"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// FormatReport writes report as JSON.
func (f *JSONFormatter) FormatReport(w io.Writer, report *check.Report) error {
	out := jsonReport{
		Files:   make([]jsonFile, 0, len(report.Files)),
		Strict:  report.Strict,
		Summary: report.Summary(),
	}

	for _, file := range report.Files {
		jf := jsonFile{Path: file.Path, OK: !file.Failed()}

		if file.Failed() {
			loc := file.Location()
			jf.Error = &jsonError{
				Line:    loc.Line,
				Column:  loc.Column,
				Message: file.Message(),
			}
			if syntaxErr := file.SyntaxError(); syntaxErr != nil {
				jf.Error.Suggestion = syntaxErr.Suggestion
			}
			if loc.Line == 0 {
				jf.Error.Message = file.Err.Error()
			}
		}

		for _, warning := range file.Warnings {
			jf.Warnings = append(jf.Warnings, jsonWarning{
				Rule:       warning.Rule,
				Line:       warning.Location.Line,
				Column:     warning.Location.Column,
				Message:    warning.Message,
				Suggestion: warning.Suggestion,
			})
		}

		out.Files = append(out.Files, jf)
	}

	return WriteJSON(w, out, f.Indent)
}
