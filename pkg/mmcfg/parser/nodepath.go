package parser

import "kspmm/mmcfg/pkg/mmcfg/ast"

func nodePathPiece() parser[*ast.NodePathPiece] {
	parent := mapTo(literal(".."), func(string) *ast.NodePathPiece {
		return &ast.NodePathPiece{Operator: ast.OperatorParentNode}
	})

	root := optional(mapTo(char('@'), func(rune) ast.Operator { return ast.OperatorPathRoot }), ast.OperatorPathRelative)
	name := nodeIdentifier()
	nameFilters := optional(filters(), nil)
	suffixes := many(alt(hasSuffixRule(), indexSuffixRule()))

	named := func(in *input, pos int) (*ast.NodePathPiece, int, *failure) {
		op, next, f := root(in, pos)
		if f != nil {
			return nil, next, f
		}
		id, next, f := name(in, next)
		if f != nil {
			return nil, next, f
		}
		fs, next, f := nameFilters(in, next)
		if f != nil {
			return nil, next, f
		}
		sfx, next, f := suffixes(in, next)
		if f != nil {
			return nil, next, f
		}
		piece := &ast.NodePathPiece{Operator: op, Name: id, Filters: fs}
		applyPathSuffixes(piece, sfx)
		return piece, next, nil
	}

	return alt(parent, named)
}

// nodePath matches "a/b/c", "/a/b" (root anchored, leading nil element) and
// "../a".
func nodePath() parser[ast.NodePath] {
	anchor := optional(mapTo(char('/'), func(rune) bool { return true }), false)
	pieces := sepBy1(nodePathPiece(), char('/'))
	return func(in *input, pos int) (ast.NodePath, int, *failure) {
		absolute, next, f := anchor(in, pos)
		if f != nil {
			return nil, next, f
		}
		ps, next, f := pieces(in, next)
		if f != nil {
			return nil, next, f
		}
		if absolute {
			return append(ast.NodePath{nil}, ps...), next, nil
		}
		return ast.NodePath(ps), next, nil
	}
}
