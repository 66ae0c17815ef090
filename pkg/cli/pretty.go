package cli

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"

	"kspmm/mmcfg/pkg/check"
	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// PrettyFormatter renders findings as diagnostics with a source snippet,
// followed by a one-line summary.
type PrettyFormatter struct {
	// Width wraps detail text at this many columns. Zero disables wrapping.
	Width uint

	// Color enables terminal colors.
	Color bool

	// ReadFile loads sources for snippets. Defaults to os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

// FormatReport writes diagnostics for every failure and warning.
func (f *PrettyFormatter) FormatReport(w io.Writer, report *check.Report) error {
	readFile := f.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	files := make(map[string]*hcl.File)
	var diags hcl.Diagnostics

	for _, file := range report.Files {
		fileDiags := diagnosticsFor(file, report.Strict)
		if len(fileDiags) == 0 {
			continue
		}
		if src, err := readFile(file.Path); err == nil {
			files[file.Path] = &hcl.File{Bytes: src}
			for _, d := range fileDiags {
				if d.Subject != nil {
					*d.Subject = sourceRange(src, d.Subject.Filename, d.Subject.Start.Line, d.Subject.Start.Column)
				}
			}
		}
		diags = append(diags, fileDiags...)
	}

	writer := hcl.NewDiagnosticTextWriter(w, files, f.Width, f.Color)
	if err := writer.WriteDiagnostics(diags); err != nil {
		return err
	}

	s := report.Summary()
	_, err := fmt.Fprintf(w, "%s checked, %s failed, %s\n",
		plural(s.Files, "file"), plural(s.Failures, "file"), plural(s.Warnings, "warning"))
	return err
}

func diagnosticsFor(file *check.FileResult, strict bool) hcl.Diagnostics {
	var diags hcl.Diagnostics

	if file.Failed() && !isStrictFailure(file) {
		diag := &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Cannot read file",
			Detail:   file.Err.Error(),
		}
		if syntaxErr := file.SyntaxError(); syntaxErr != nil {
			diag.Summary = "Syntax error"
			diag.Detail = syntaxErr.Message
			if syntaxErr.Suggestion != "" {
				diag.Detail += ". " + syntaxErr.Suggestion
			}
			diag.Subject = subjectAt(syntaxErr.Location)
		}
		return append(diags, diag)
	}

	severity := hcl.DiagWarning
	if strict {
		severity = hcl.DiagError
	}
	for _, warning := range file.Warnings {
		detail := warning.Message
		if warning.Suggestion != "" {
			detail += ". " + warning.Suggestion
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: severity,
			Summary:  "Lint: " + warning.Rule,
			Detail:   detail,
			Subject:  subjectAt(warning.Location),
		})
	}
	return diags
}

// subjectAt returns a placeholder range carrying only the line and
// column. Byte offsets are filled in once the source is loaded.
func subjectAt(loc ast.Location) *hcl.Range {
	pos := hcl.Pos{Line: loc.Line, Column: loc.Column}
	return &hcl.Range{Filename: loc.File, Start: pos, End: pos}
}

// sourceRange returns the range of the character at line:col of src.
// Lines break on "\n", "\r\n" or a lone "\r", as in the parser. A
// column past the end of its line selects the line's last character.
func sourceRange(src []byte, filename string, line, col int) hcl.Range {
	offset := 0
	for l := 1; l < line && offset < len(src); {
		if n := lineBreak(src, offset); n > 0 {
			offset += n
			l++
			continue
		}
		offset++
	}

	c := 1
	for ; c < col && offset < len(src) && lineBreak(src, offset) == 0; c++ {
		_, size := utf8.DecodeRune(src[offset:])
		offset += size
	}

	start := hcl.Pos{Line: line, Column: c, Byte: offset}
	end := hcl.Pos{Line: line, Column: c, Byte: offset}
	switch {
	case offset < len(src) && lineBreak(src, offset) == 0:
		_, size := utf8.DecodeRune(src[offset:])
		end.Column++
		end.Byte += size
	case offset > 0 && !isLineBreak(src[offset-1]):
		_, size := utf8.DecodeLastRune(src[:offset])
		start.Column--
		start.Byte -= size
	}
	return hcl.Range{Filename: filename, Start: start, End: end}
}

// lineBreak returns the width of the line break at src[i], or 0.
func lineBreak(src []byte, i int) int {
	switch src[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(src) && src[i+1] == '\n' {
			return 2
		}
		return 1
	}
	return 0
}

func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r'
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
