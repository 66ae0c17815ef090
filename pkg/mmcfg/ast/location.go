package ast

import "fmt"

// Location represents the position of a construct in its source text.
type Location struct {
	File   string // Path to the source file, empty for in-memory text
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based, counted in characters)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column", or "line:column" when the file is unknown.
func (l Location) String() string {
	if !l.IsValid() {
		return "<unknown>"
	}
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location has line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// WithFile returns a copy of the location attributed to file.
func (l Location) WithFile(file string) Location {
	l.File = file
	return l
}
