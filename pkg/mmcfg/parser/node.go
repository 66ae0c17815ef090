package parser

import "kspmm/mmcfg/pkg/mmcfg/ast"

// bodyItem is one entry of a node body. Comments leave every field nil.
type bodyItem struct {
	property *ast.ConfigProperty
	node     *ast.ConfigNode
	paste    *ast.PasteNode
}

func openBrace() parser[struct{}] {
	return skip(between(junk(), char('{'), junk()))
}

func closeBrace() parser[struct{}] {
	return skip(right(junk(), char('}')))
}

// body matches "{ item \n item ... }" where items are separated by at
// least one line break.
func body(item parser[bodyItem]) parser[[]bodyItem] {
	return between(openBrace(), sepBy(item, atLeastOneEOL()), closeBrace())
}

// pasteNode matches "#path:NEEDS[..] { ... }". The body is parsed only to
// find where the directive ends; its contents are discarded.
func pasteNode(node parser[*ast.ConfigNode], prop parser[*ast.ConfigProperty]) parser[*ast.PasteNode] {
	hash := char('#')
	path := nodePath()
	needs := optional(needsClause(), nil)
	discard := body(alt(
		mapTo(prop, func(*ast.ConfigProperty) bodyItem { return bodyItem{} }),
		mapTo(node, func(*ast.ConfigNode) bodyItem { return bodyItem{} }),
		mapTo(comment(), func(string) bodyItem { return bodyItem{} }),
	))

	return func(in *input, pos int) (*ast.PasteNode, int, *failure) {
		_, next, f := hash(in, pos)
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
		_, next, f = discard(in, next)
		if f != nil {
			return nil, next, f
		}
		return &ast.PasteNode{Path: p, Needs: n, Location: in.location(pos)}, next, nil
	}
}

// configNode is the recursive node rule. The body alternatives are tried in
// order: property, child node, paste directive, comment. A property only
// counts as entered once its assignment operator matched; a child node or
// paste directive that fails after consuming input aborts the parse.
func configNode() parser[*ast.ConfigNode] {
	return fix(func(self parser[*ast.ConfigNode]) parser[*ast.ConfigNode] {
		prop := property()
		paste := pasteNode(self, prop)

		item := alt(
			mapTo(atomic(prop, "property"), func(p *ast.ConfigProperty) bodyItem { return bodyItem{property: p} }),
			mapTo(commit(self), func(n *ast.ConfigNode) bodyItem { return bodyItem{node: n} }),
			mapTo(commit(paste), func(p *ast.PasteNode) bodyItem { return bodyItem{paste: p} }),
			mapTo(comment(), func(string) bodyItem { return bodyItem{} }),
		)

		operator := optional(commonOperator(), ast.OperatorInsert)
		name := nodeIdentifier()
		nameFilters := optional(commit(filters()), nil)
		suffixes := nodeSuffixes()
		contents := body(item)

		return func(in *input, pos int) (*ast.ConfigNode, int, *failure) {
			op, next, f := operator(in, pos)
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
			items, next, f := contents(in, next)
			if f != nil {
				return nil, next, f
			}
			return buildNode(op, id, fs, sfx, items, in.location(pos)), next, nil
		}
	})
}

func buildNode(op ast.Operator, name string, filters []string, suffixes []suffix, items []bodyItem, loc ast.Location) *ast.ConfigNode {
	node := &ast.ConfigNode{
		Operator: op,
		Name:     name,
		Filters:  filters,
		Location: loc,
	}
	applySuffixes(node, suffixes)

	for _, item := range items {
		switch {
		case item.property != nil:
			node.Properties = append(node.Properties, item.property)
		case item.node != nil:
			node.Children = append(node.Children, item.node)
		case item.paste != nil:
			node.Pastes = append(node.Pastes, item.paste)
		}
	}
	return node
}

// document matches a whole file: nodes separated by line breaks, with junk
// allowed before, after and between them.
func document(node parser[*ast.ConfigNode]) parser[[]*ast.ConfigNode] {
	return left(
		between(junk(), sepBy(commit(node), atLeastOneEOL()), junk()),
		endOfInput(),
	)
}
