package parser

import (
	"slices"
	"strconv"
	"strings"
)

// failure is the result of a parser that did not match.
//
// A soft failure lets the enclosing alternation try its next option. A
// fatal failure stops every enclosing alternation and becomes the error of
// the whole parse. pos is where the failing parser got to, which is what
// commit compares against the starting position.
type failure struct {
	pos      int
	expected []string
	fatal    bool
}

func expected(pos int, labels ...string) *failure {
	return &failure{pos: pos, expected: labels}
}

// merge combines two soft failures of the same alternation. The one that
// got further wins; on a tie the expectations are joined.
func (f *failure) merge(other *failure) *failure {
	switch {
	case f == nil:
		return other
	case other == nil:
		return f
	case other.pos > f.pos:
		return other
	case other.pos < f.pos:
		return f
	}
	return &failure{pos: f.pos, expected: append(slices.Clip(f.expected), other.expected...)}
}

func (f *failure) message(in *input) string {
	msg := "unexpected " + in.describe(f.pos)

	var labels []string
	for _, label := range f.expected {
		if !slices.Contains(labels, label) {
			labels = append(labels, label)
		}
	}
	switch len(labels) {
	case 0:
		return msg
	case 1:
		return msg + ", expected " + labels[0]
	default:
		return msg + ", expected " + strings.Join(labels[:len(labels)-1], ", ") + " or " + labels[len(labels)-1]
	}
}

// parser matches a prefix of in.src starting at pos. On success it returns
// the value and the position after the match. Parsers hold no state and
// are safe to share between goroutines.
type parser[T any] func(in *input, pos int) (T, int, *failure)

func pure[T any](value T) parser[T] {
	return func(_ *input, pos int) (T, int, *failure) {
		return value, pos, nil
	}
}

// literal matches s exactly. A partial match consumes nothing.
func literal(s string) parser[string] {
	label := strconv.Quote(s)
	return func(in *input, pos int) (string, int, *failure) {
		if strings.HasPrefix(in.src[pos:], s) {
			return s, pos + len(s), nil
		}
		return "", pos, expected(pos, label)
	}
}

// literalFold matches s ignoring case.
func literalFold(s string) parser[string] {
	label := strconv.Quote(s)
	return func(in *input, pos int) (string, int, *failure) {
		end := pos + len(s)
		if end <= len(in.src) && strings.EqualFold(in.src[pos:end], s) {
			return s, end, nil
		}
		return "", pos, expected(pos, label)
	}
}

// satisfy matches one character accepted by pred.
func satisfy(pred func(rune) bool, labels ...string) parser[rune] {
	return func(in *input, pos int) (rune, int, *failure) {
		r, width := in.peek(pos)
		if r != eof && pred(r) {
			return r, pos + width, nil
		}
		return 0, pos, expected(pos, labels...)
	}
}

func char(c rune) parser[rune] {
	return satisfy(func(r rune) bool { return r == c }, strconv.Quote(string(c)))
}

func oneOf(chars string) parser[rune] {
	labels := make([]string, 0, len(chars))
	for _, c := range chars {
		labels = append(labels, strconv.Quote(string(c)))
	}
	return satisfy(func(r rune) bool { return strings.ContainsRune(chars, r) }, labels...)
}

// takeWhile returns the longest run of characters accepted by pred.
func takeWhile(pred func(rune) bool) parser[string] {
	return func(in *input, pos int) (string, int, *failure) {
		end := pos
		for {
			r, width := in.peek(end)
			if r == eof || !pred(r) {
				break
			}
			end += width
		}
		return in.src[pos:end], end, nil
	}
}

// takeWhile1 is takeWhile requiring at least one character.
func takeWhile1(pred func(rune) bool, label string) parser[string] {
	run := takeWhile(pred)
	return func(in *input, pos int) (string, int, *failure) {
		text, next, _ := run(in, pos)
		if next == pos {
			return "", pos, expected(pos, label)
		}
		return text, next, nil
	}
}

// alt tries each parser in order from the same position and returns the
// first success. A fatal failure is returned at once.
func alt[T any](parsers ...parser[T]) parser[T] {
	return func(in *input, pos int) (T, int, *failure) {
		var best *failure
		for _, p := range parsers {
			value, next, f := p(in, pos)
			if f == nil {
				return value, next, nil
			}
			if f.fatal {
				return value, f.pos, f
			}
			best = best.merge(f)
		}
		var zero T
		return zero, pos, best
	}
}

// optional returns def without consuming input when p fails softly.
func optional[T any](p parser[T], def T) parser[T] {
	return func(in *input, pos int) (T, int, *failure) {
		value, next, f := p(in, pos)
		if f == nil {
			return value, next, nil
		}
		if f.fatal {
			return value, f.pos, f
		}
		return def, pos, nil
	}
}

// many applies p until it fails softly. A soft failure after partial
// input is backtracked to the end of the last complete match.
func many[T any](p parser[T]) parser[[]T] {
	return func(in *input, pos int) ([]T, int, *failure) {
		var items []T
		for {
			value, next, f := p(in, pos)
			if f != nil {
				if f.fatal {
					return nil, f.pos, f
				}
				return items, pos, nil
			}
			items = append(items, value)
			if next == pos {
				return items, pos, nil
			}
			pos = next
		}
	}
}

// skipMany is many without collecting results.
func skipMany[T any](p parser[T]) parser[struct{}] {
	return func(in *input, pos int) (struct{}, int, *failure) {
		for {
			_, next, f := p(in, pos)
			if f != nil {
				if f.fatal {
					return struct{}{}, f.pos, f
				}
				return struct{}{}, pos, nil
			}
			if next == pos {
				return struct{}{}, pos, nil
			}
			pos = next
		}
	}
}

// sepBy matches zero or more p separated by sep. A separator that is not
// followed by another p is left unconsumed.
func sepBy[T, S any](p parser[T], sep parser[S]) parser[[]T] {
	some := sepBy1(p, sep)
	return func(in *input, pos int) ([]T, int, *failure) {
		items, next, f := some(in, pos)
		if f != nil && !f.fatal {
			return nil, pos, nil
		}
		return items, next, f
	}
}

// sepBy1 is sepBy requiring at least one p.
func sepBy1[T, S any](p parser[T], sep parser[S]) parser[[]T] {
	return func(in *input, pos int) ([]T, int, *failure) {
		first, next, f := p(in, pos)
		if f != nil {
			return nil, f.pos, f
		}
		items := []T{first}
		pos = next
		for {
			_, afterSep, f := sep(in, pos)
			if f != nil {
				if f.fatal {
					return nil, f.pos, f
				}
				return items, pos, nil
			}
			value, afterItem, f := p(in, afterSep)
			if f != nil {
				if f.fatal {
					return nil, f.pos, f
				}
				return items, pos, nil
			}
			items = append(items, value)
			pos = afterItem
		}
	}
}

// commit turns a soft failure that happened after p consumed input into a
// fatal one, so a malformed construct is reported where it went wrong
// instead of being retried as something else.
func commit[T any](p parser[T]) parser[T] {
	return func(in *input, pos int) (T, int, *failure) {
		value, next, f := p(in, pos)
		if f != nil && !f.fatal && f.pos != pos {
			return value, f.pos, &failure{pos: f.pos, expected: f.expected, fatal: true}
		}
		return value, next, f
	}
}

// atomic reports any soft failure of p at the starting position, so that
// p never counts as having consumed input.
func atomic[T any](p parser[T], label string) parser[T] {
	return func(in *input, pos int) (T, int, *failure) {
		value, next, f := p(in, pos)
		if f != nil && !f.fatal {
			return value, pos, expected(pos, label)
		}
		return value, next, f
	}
}

func mapTo[T, U any](p parser[T], fn func(T) U) parser[U] {
	return func(in *input, pos int) (U, int, *failure) {
		value, next, f := p(in, pos)
		if f != nil {
			var zero U
			return zero, next, f
		}
		return fn(value), next, nil
	}
}

// skip discards the value of p.
func skip[T any](p parser[T]) parser[struct{}] {
	return mapTo(p, func(T) struct{} { return struct{}{} })
}

// right matches a then b and keeps b's value.
func right[A, B any](a parser[A], b parser[B]) parser[B] {
	return func(in *input, pos int) (B, int, *failure) {
		_, next, f := a(in, pos)
		if f != nil {
			var zero B
			return zero, f.pos, f
		}
		return b(in, next)
	}
}

// left matches a then b and keeps a's value.
func left[A, B any](a parser[A], b parser[B]) parser[A] {
	return func(in *input, pos int) (A, int, *failure) {
		value, next, f := a(in, pos)
		if f != nil {
			return value, f.pos, f
		}
		_, next, f = b(in, next)
		if f != nil {
			return value, f.pos, f
		}
		return value, next, nil
	}
}

func between[O, T, C any](open parser[O], p parser[T], close parser[C]) parser[T] {
	return left(right(open, p), close)
}

// fix ties a recursive knot: build receives a parser that forwards to the
// parser build returns.
func fix[T any](build func(self parser[T]) parser[T]) parser[T] {
	var p parser[T]
	p = build(func(in *input, pos int) (T, int, *failure) {
		return p(in, pos)
	})
	return p
}

func endOfInput() parser[struct{}] {
	return func(in *input, pos int) (struct{}, int, *failure) {
		if pos == len(in.src) {
			return struct{}{}, pos, nil
		}
		return struct{}{}, pos, expected(pos, "end of input")
	}
}
