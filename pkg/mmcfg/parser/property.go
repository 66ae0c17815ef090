package parser

import (
	"slices"
	"strings"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

func propertyOperator() parser[ast.Operator] {
	return optional(
		alt(commonOperator(), mapTo(char('|'), func(rune) ast.Operator { return ast.OperatorRename })),
		ast.OperatorInsert,
	)
}

// propertyWordChar accepts one character of a property name. The
// arithmetic glyphs only count when they do not start an assignment
// operator.
func propertyWordChar(in *input, pos int) (int, bool) {
	r, width := in.peek(pos)
	switch {
	case r == eof:
		return pos, false
	case isLetterOrDigit(r), strings.ContainsRune("#_.?", r):
		return pos + width, true
	case strings.ContainsRune("+-*/", r):
		if next, _ := in.peek(pos + width); next == '=' {
			return pos, false
		}
		return pos + width, true
	}
	return pos, false
}

// propertyIdentifier matches a name that may contain interior spaces but
// starts and ends on a word character.
func propertyIdentifier() parser[string] {
	return func(in *input, pos int) (string, int, *failure) {
		end, ok := propertyWordChar(in, pos)
		if !ok {
			return "", pos, expected(pos, "property name")
		}
		for {
			next := end
			for strings.HasPrefix(in.src[next:], " ") {
				next++
			}
			after, ok := propertyWordChar(in, next)
			if !ok {
				break
			}
			end = after
		}
		return in.src[pos:end], end, nil
	}
}

var (
	arithmeticOperators = []ast.AssignmentOperator{
		ast.AssignmentAssign,
		ast.AssignmentAdd,
		ast.AssignmentSubtract,
		ast.AssignmentMultiply,
		ast.AssignmentDivide,
		ast.AssignmentPower,
	}
	allAssignmentOperators = append(slices.Clone(arithmeticOperators), ast.AssignmentRegexReplace)
)

// assignmentOperator matches one of ops surrounded by intra-line spaces.
func assignmentOperator(ops []ast.AssignmentOperator) parser[ast.AssignmentOperator] {
	choices := make([]parser[ast.AssignmentOperator], len(ops))
	for i, op := range ops {
		choices[i] = mapTo(literal(string(op)), func(string) ast.AssignmentOperator { return op })
	}
	return between(spacesWithinLine(), alt(choices...), spacesWithinLine())
}

// propertyValue reads to the end of the line, a closing brace or the start
// of a comment, and trims the result. A single '/' is part of the value.
func propertyValue() parser[string] {
	return func(in *input, pos int) (string, int, *failure) {
		end := pos
		for end < len(in.src) {
			c := in.src[end]
			if c == '\r' || c == '\n' || c == '}' || strings.HasPrefix(in.src[end:], "//") {
				break
			}
			end++
		}
		return strings.TrimSpace(in.src[pos:end]), end, nil
	}
}

// externalProperty matches "*path:NEEDS[..] op value".
func externalProperty() parser[*ast.ConfigProperty] {
	star := char('*')
	path := nodePath()
	needs := optional(needsClause(), nil)
	op := assignmentOperator(arithmeticOperators)
	value := propertyValue()

	return func(in *input, pos int) (*ast.ConfigProperty, int, *failure) {
		_, next, f := star(in, pos)
		if f != nil {
			return nil, next, f
		}
		p, next, f := path(in, next)
		if f != nil {
			return nil, next, f
		}
		n, next, f := needs(in, next)
		if f != nil {
			return nil, next, f
		}
		assign, next, f := op(in, next)
		if f != nil {
			return nil, next, f
		}
		v, next, _ := value(in, next)
		return &ast.ConfigProperty{
			Operator:           ast.OperatorExternalValueAccess,
			Path:               p,
			Needs:              n,
			AssignmentOperator: assign,
			Value:              v,
			Location:           in.location(pos),
		}, next, nil
	}
}

// normalProperty matches "op name:NEEDS[..],index[array] op value".
func normalProperty() parser[*ast.ConfigProperty] {
	operator := propertyOperator()
	name := propertyIdentifier()
	needs := optional(needsClause(), nil)
	idx := optional(index(), nil)
	arrIdx := optional(arrayIndex(), nil)
	op := assignmentOperator(allAssignmentOperators)
	value := propertyValue()

	return func(in *input, pos int) (*ast.ConfigProperty, int, *failure) {
		o, next, f := operator(in, pos)
		if f != nil {
			return nil, next, f
		}
		id, next, f := name(in, next)
		if f != nil {
			return nil, next, f
		}
		n, next, f := needs(in, next)
		if f != nil {
			return nil, next, f
		}
		i, next, f := idx(in, next)
		if f != nil {
			return nil, next, f
		}
		a, next, f := arrIdx(in, next)
		if f != nil {
			return nil, next, f
		}
		assign, next, f := op(in, next)
		if f != nil {
			return nil, next, f
		}
		v, next, _ := value(in, next)
		return &ast.ConfigProperty{
			Operator:           o,
			Name:               id,
			Needs:              n,
			Index:              i,
			ArrayIndex:         a,
			AssignmentOperator: assign,
			Value:              v,
			Location:           in.location(pos),
		}, next, nil
	}
}

// property tries the external value form first.
func property() parser[*ast.ConfigProperty] {
	return alt(externalProperty(), normalProperty())
}
