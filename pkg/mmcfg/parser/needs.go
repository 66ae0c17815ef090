package parser

import "kspmm/mmcfg/pkg/mmcfg/ast"

func needsMod() parser[ast.NeedsMod] {
	negated := optional(mapTo(char('!'), func(rune) bool { return true }), false)
	name := takeWhile1(isNeedsNameChar, "mod name")
	return func(in *input, pos int) (ast.NeedsMod, int, *failure) {
		neg, next, f := negated(in, pos)
		if f != nil {
			return ast.NeedsMod{}, next, f
		}
		mod, next, f := name(in, next)
		if f != nil {
			return ast.NeedsMod{}, next, f
		}
		return ast.NeedsMod{Name: mod, Negated: neg}, next, nil
	}
}

// needsExpression matches the body of a :NEEDS clause: '|' binds tighter
// than '&' and ',', which are equivalent.
func needsExpression() parser[*ast.NeedsAnd] {
	or := mapTo(sepBy1(needsMod(), char('|')), func(mods []ast.NeedsMod) *ast.NeedsOr {
		return &ast.NeedsOr{Mods: mods}
	})
	return mapTo(sepBy1(or, oneOf("&,")), func(groups []*ast.NeedsOr) *ast.NeedsAnd {
		return &ast.NeedsAnd{Groups: groups}
	})
}

func needsClause() parser[*ast.NeedsAnd] {
	return between(literal(":NEEDS["), needsExpression(), char(']'))
}
