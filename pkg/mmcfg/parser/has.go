package parser

import "kspmm/mmcfg/pkg/mmcfg/ast"

func hasKind() parser[ast.HasKind] {
	return func(in *input, pos int) (ast.HasKind, int, *failure) {
		r, width := in.peek(pos)
		var kind ast.HasKind
		switch r {
		case '@':
			kind = ast.HasNode
		case '!':
			kind = ast.HasNoNode
		case '#':
			kind = ast.HasProperty
		case '~':
			kind = ast.HasNoProperty
		default:
			return "", pos, expected(pos, `"@"`, `"!"`, `"#"`, `"~"`)
		}
		return kind, pos + width, nil
	}
}

// hasClause matches ":HAS[piece,piece&piece]". A piece may carry its own
// nested clause, so the rule is built as a fixpoint.
func hasClause() parser[*ast.Has] {
	return fix(func(self parser[*ast.Has]) parser[*ast.Has] {
		kind := hasKind()
		key := takeWhile1(isHasKeyChar, "key")
		value := optional(
			mapTo(between(char('['), takeWhile(func(r rune) bool { return r != ']' }), char(']')),
				func(s string) *string { return &s }),
			nil,
		)
		nested := optional(self, nil)

		piece := func(in *input, pos int) (*ast.HasPiece, int, *failure) {
			k, next, f := kind(in, pos)
			if f != nil {
				return nil, next, f
			}
			name, next, f := key(in, next)
			if f != nil {
				return nil, next, f
			}
			v, next, f := value(in, next)
			if f != nil {
				return nil, next, f
			}
			sub, next, f := nested(in, next)
			if f != nil {
				return nil, next, f
			}
			return &ast.HasPiece{Kind: k, Key: name, Value: v, Has: sub}, next, nil
		}

		return mapTo(
			between(literal(":HAS["), sepBy1(piece, oneOf("&,")), char(']')),
			func(pieces []*ast.HasPiece) *ast.Has { return &ast.Has{Pieces: pieces} },
		)
	})
}
