package errors

import (
	"fmt"
	"strings"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// ExtractContext extracts the lines surrounding location from source and
// formats them with line numbers and a caret under the error column.
func ExtractContext(source string, location ast.Location, contextLines int) string {
	if !location.IsValid() {
		return ""
	}

	lines := splitLines(source)
	errorLine := location.Line - 1 // Convert to 0-based index
	if errorLine >= len(lines) {
		return ""
	}

	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, maxLineNumWidth, i+1, lines[i]))

		if i == errorLine && location.Column > 0 {
			padding := caretPadding(lines[i], location.Column)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", maxLineNumWidth), padding))
		}
	}

	return sb.String()
}

// WithContext fills the error's Context from source.
func WithContext(err *SyntaxError, source string, contextLines int) *SyntaxError {
	if err.Location.IsValid() {
		err.Context = ExtractContext(source, err.Location, contextLines)
	}
	return err
}

// AddContextToError adds two lines of context either side of the error.
func AddContextToError(err *SyntaxError, source string) *SyntaxError {
	return WithContext(err, source, 2)
}

// splitLines splits on \r\n, \n and \r.
func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	return strings.Split(source, "\n")
}

// caretPadding keeps tabs so the caret lines up with the source line.
func caretPadding(line string, column int) string {
	var sb strings.Builder
	for i, r := range []rune(line) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}
