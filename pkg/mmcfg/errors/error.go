package errors

import (
	"fmt"
	"strings"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// SyntaxError is the only error the parser produces. It reports where the
// input stopped matching the grammar and what was expected there.
type SyntaxError struct {
	Location   ast.Location // Source location (file, line, column)
	Message    string       // Error message
	Context    string       // Surrounding lines of source (optional)
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a single line: "file:line:col: message".
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Line returns the 1-based line of the error.
func (e *SyntaxError) Line() int { return e.Location.Line }

// Column returns the 1-based column of the error.
func (e *SyntaxError) Column() int { return e.Location.Column }

// Detailed returns a multi-line rendering with the source excerpt and the
// suggestion, when present.
func (e *SyntaxError) Detailed() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[syntax] %s\n", e.Message))
	sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location))

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// WithFile returns a copy of the error attributed to file.
func (e *SyntaxError) WithFile(file string) *SyntaxError {
	c := *e
	c.Location.File = file
	return &c
}
