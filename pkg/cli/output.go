package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"kspmm/mmcfg/pkg/check"
	"kspmm/mmcfg/pkg/mmcfg/lint"
)

// OutputFormat represents the output format for validation reports.
type OutputFormat string

const (
	// FormatAuto picks FormatGitHub inside GitHub Actions, FormatText otherwise.
	FormatAuto OutputFormat = "auto"
	// FormatText prints one "path:line:col: message" line per finding.
	FormatText OutputFormat = "text"
	// FormatGitHub prints GitHub Actions workflow commands.
	FormatGitHub OutputFormat = "github"
	// FormatJSON prints one JSON document with every result.
	FormatJSON OutputFormat = "json"
	// FormatPretty prints diagnostics with a source snippet.
	FormatPretty OutputFormat = "pretty"
)

// Formats lists every accepted output format.
var Formats = []OutputFormat{FormatAuto, FormatText, FormatGitHub, FormatJSON, FormatPretty}

// ParseFormat validates a format name.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	if !slices.Contains(Formats, f) {
		return "", NewConfigError("format", fmt.Sprintf("unknown format %q (want one of %v)", s, Formats))
	}
	return f, nil
}

// ResolveFormat replaces FormatAuto with the concrete format for the
// environment. GitHub Actions is detected by GITHUB_ACTIONS and
// GITHUB_WORKFLOW both being set, even to an empty value. lookupEnv has
// the signature of os.LookupEnv.
func ResolveFormat(format OutputFormat, lookupEnv func(string) (string, bool)) OutputFormat {
	if format != FormatAuto {
		return format
	}
	_, actions := lookupEnv("GITHUB_ACTIONS")
	_, workflow := lookupEnv("GITHUB_WORKFLOW")
	if actions && workflow {
		return FormatGitHub
	}
	return FormatText
}

// Formatter writes a validation report.
type Formatter interface {
	FormatReport(w io.Writer, report *check.Report) error
}

// NewFormatter creates a formatter for a resolved format. FormatAuto
// falls back to FormatText; resolve it first with ResolveFormat.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatGitHub:
		return &GitHubFormatter{}
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatPretty:
		return &PrettyFormatter{}
	default:
		return &TextFormatter{}
	}
}

// WriteJSON writes data as JSON followed by a newline.
func WriteJSON(w io.Writer, data any, indent bool) error {
	encoder := json.NewEncoder(w)
	if indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// isStrictFailure reports whether file failed only because of lint
// warnings in strict mode. Such files are reported through their warnings.
func isStrictFailure(file *check.FileResult) bool {
	var strictErr *lint.StrictError
	return errors.As(file.Err, &strictErr)
}
