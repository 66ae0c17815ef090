package parser

import (
	"strconv"
	"strings"
	"unicode"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// bom is the zero-width no-break space some files carry. It is treated as
// insignificant whitespace wherever it appears.
const bom = '\uFEFF'

func isInlineSpace(r rune) bool { return r == ' ' || r == '\t' || r == bom }

func isJunkSpace(r rune) bool { return unicode.IsSpace(r) || r == bom }

func isLetterOrDigit(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

func isLineBreak(r rune) bool { return r == '\r' || r == '\n' }

func isNodeNameChar(r rune) bool {
	return isLetterOrDigit(r) || strings.ContainsRune("-_.+", r)
}

func isHasKeyChar(r rune) bool { return isLetterOrDigit(r) || r == '_' }

func isNeedsNameChar(r rune) bool {
	return isLetterOrDigit(r) || strings.ContainsRune("/_-?", r)
}

func isFilterChar(r rune) bool { return !strings.ContainsRune("|,]", r) }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// spacesWithinLine skips spaces and tabs without crossing a line break.
func spacesWithinLine() parser[struct{}] {
	return skip(takeWhile(isInlineSpace))
}

// comment matches "//" to the end of the line and returns the text after
// the slashes, untrimmed.
func comment() parser[string] {
	return right(literal("//"), takeWhile(func(r rune) bool { return !isLineBreak(r) }))
}

// junk skips any mixture of whitespace, line breaks and comments.
func junk() parser[struct{}] {
	return skipMany(alt(
		skip(comment()),
		skip(satisfy(isJunkSpace, "whitespace")),
	))
}

func endOfLine() parser[struct{}] {
	return func(in *input, pos int) (struct{}, int, *failure) {
		switch {
		case strings.HasPrefix(in.src[pos:], "\r\n"):
			return struct{}{}, pos + 2, nil
		case strings.HasPrefix(in.src[pos:], "\n"), strings.HasPrefix(in.src[pos:], "\r"):
			return struct{}{}, pos + 1, nil
		}
		return struct{}{}, pos, expected(pos, "end of line")
	}
}

// atLeastOneEOL separates siblings: optional trailing spaces and comment,
// a line break, then any junk.
func atLeastOneEOL() parser[struct{}] {
	return right(
		right(spacesWithinLine(), optional(comment(), "")),
		right(endOfLine(), junk()),
	)
}

// commonOperator matches the operator glyphs shared by nodes and properties.
func commonOperator() parser[ast.Operator] {
	return func(in *input, pos int) (ast.Operator, int, *failure) {
		r, width := in.peek(pos)
		var op ast.Operator
		switch r {
		case '@':
			op = ast.OperatorEdit
		case '+', '$':
			op = ast.OperatorCopy
		case '-', '!':
			op = ast.OperatorDelete
		case '%':
			op = ast.OperatorEditOrCreate
		case '&':
			op = ast.OperatorCreate
		default:
			return "", pos, expected(pos, "operator")
		}
		return op, pos + width, nil
	}
}

// integer matches an optional '-' and one or more decimal digits.
func integer() parser[int] {
	return func(in *input, pos int) (int, int, *failure) {
		end := pos
		if strings.HasPrefix(in.src[pos:], "-") {
			end++
		}
		digits := end
		for end < len(in.src) && isDigit(rune(in.src[end])) {
			end++
		}
		if end == digits {
			return 0, digits, expected(digits, "integer")
		}
		n, err := strconv.Atoi(in.src[pos:end])
		if err != nil {
			return 0, pos, expected(pos, "integer")
		}
		return n, end, nil
	}
}

func nodeIdentifier() parser[string] {
	return takeWhile1(isNodeNameChar, "node name")
}

// filters matches "[a|b,c]".
func filters() parser[[]string] {
	return between(
		char('['),
		sepBy1(takeWhile1(isFilterChar, "filter"), oneOf("|,")),
		char(']'),
	)
}
