package parser

import "kspmm/mmcfg/pkg/mmcfg/ast"

func intOrWildcard() parser[*int] {
	return alt(
		mapTo(integer(), func(n int) *int { return &n }),
		mapTo(char('*'), func(rune) *int { return nil }),
	)
}

// index matches ",N" or ",*".
func index() parser[*ast.Index] {
	return mapTo(right(char(','), intOrWildcard()), func(v *int) *ast.Index {
		return &ast.Index{Value: v}
	})
}

// arrayIndex matches "[N]", "[*]" or "[N,X]" where X is any one character.
func arrayIndex() parser[*ast.ArrayIndex] {
	openBracket, closeBracket := char('['), char(']')
	value := intOrWildcard()
	separator := optional(right(char(','), satisfy(func(rune) bool { return true }, "separator")), ast.DefaultArraySeparator)
	return func(in *input, pos int) (*ast.ArrayIndex, int, *failure) {
		_, next, f := openBracket(in, pos)
		if f != nil {
			return nil, next, f
		}
		v, next, f := value(in, next)
		if f != nil {
			return nil, next, f
		}
		sep, next, f := separator(in, next)
		if f != nil {
			return nil, next, f
		}
		_, next, f = closeBracket(in, next)
		if f != nil {
			return nil, next, f
		}
		return &ast.ArrayIndex{Value: v, Separator: sep}, next, nil
	}
}
