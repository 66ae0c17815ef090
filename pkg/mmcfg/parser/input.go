package parser

import (
	"sort"
	"strconv"
	"unicode/utf8"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// eof is returned by peek past the end of the input.
const eof rune = -1

// input is the immutable text being parsed. Positions are byte offsets
// into src; lineStarts maps them back to lines for error reporting.
type input struct {
	src        string
	file       string
	lineStarts []int
}

func newInput(src, file string) *input {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				continue
			}
			starts = append(starts, i+1)
		}
	}
	return &input{src: src, file: file, lineStarts: starts}
}

// peek decodes the rune at pos and returns it with its width in bytes.
func (in *input) peek(pos int) (rune, int) {
	if pos >= len(in.src) {
		return eof, 0
	}
	return utf8.DecodeRuneInString(in.src[pos:])
}

// location converts a byte offset to a 1-based line and column. Columns
// count characters, not bytes.
func (in *input) location(pos int) ast.Location {
	line := sort.Search(len(in.lineStarts), func(i int) bool {
		return in.lineStarts[i] > pos
	}) - 1
	start := in.lineStarts[line]
	return ast.Location{
		File:   in.file,
		Line:   line + 1,
		Column: utf8.RuneCountInString(in.src[start:pos]) + 1,
	}
}

// describe names the input found at pos for "unexpected ..." messages.
func (in *input) describe(pos int) string {
	r, _ := in.peek(pos)
	switch r {
	case eof:
		return "end of input"
	case '\n', '\r':
		return "end of line"
	case bom:
		return "byte order mark"
	default:
		return strconv.Quote(string(r))
	}
}
