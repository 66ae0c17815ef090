package parser

import "kspmm/mmcfg/pkg/mmcfg/ast"

// suffix is one clause following a node name or path segment. The set of
// implementations is closed: hasSuffix, needsSuffix, indexSuffix and
// passSuffix.
type suffix interface {
	isSuffix()
}

type hasSuffix struct{ has *ast.Has }

type needsSuffix struct{ needs *ast.NeedsAnd }

type indexSuffix struct{ index *ast.Index }

type passKind int

const (
	passFirst passKind = iota
	passBefore
	passFor
	passAfter
	passLast
	passFinal
)

// passSuffix is a pass marker. target is empty for :FIRST and :FINAL.
type passSuffix struct {
	kind   passKind
	target string
}

func (hasSuffix) isSuffix()   {}
func (needsSuffix) isSuffix() {}
func (indexSuffix) isSuffix() {}
func (passSuffix) isSuffix()  {}

func asSuffix[T suffix](p parser[T]) parser[suffix] {
	return mapTo(p, func(s T) suffix { return s })
}

func hasSuffixRule() parser[suffix] {
	return asSuffix(mapTo(hasClause(), func(h *ast.Has) hasSuffix { return hasSuffix{h} }))
}

func needsSuffixRule() parser[suffix] {
	return asSuffix(mapTo(needsClause(), func(n *ast.NeedsAnd) needsSuffix { return needsSuffix{n} }))
}

func indexSuffixRule() parser[suffix] {
	return asSuffix(mapTo(index(), func(i *ast.Index) indexSuffix { return indexSuffix{i} }))
}

// passTarget matches ":LABEL[name]" with the label in any case.
func passTarget(label string, kind passKind) parser[suffix] {
	return asSuffix(mapTo(
		between(literalFold(":"+label+"["), nodeIdentifier(), char(']')),
		func(target string) passSuffix { return passSuffix{kind: kind, target: target} },
	))
}

func passFlag(label string, kind passKind) parser[suffix] {
	return asSuffix(mapTo(literalFold(":"+label), func(string) passSuffix {
		return passSuffix{kind: kind}
	}))
}

// nodeSuffixes matches any mixture of node header clauses. Every clause
// that takes an argument is committed once its label has matched.
func nodeSuffixes() parser[[]suffix] {
	return many(alt(
		commit(hasSuffixRule()),
		commit(needsSuffixRule()),
		commit(indexSuffixRule()),
		commit(passTarget("FOR", passFor)),
		commit(passTarget("BEFORE", passBefore)),
		commit(passTarget("AFTER", passAfter)),
		commit(passTarget("LAST", passLast)),
		passFlag("FIRST", passFirst),
		passFlag("FINAL", passFinal),
	))
}

// applySuffixes resolves suffixes onto node. The first clause of each kind
// wins and later duplicates are ignored.
func applySuffixes(node *ast.ConfigNode, suffixes []suffix) {
	for _, s := range suffixes {
		switch s := s.(type) {
		case hasSuffix:
			if node.Has == nil {
				node.Has = s.has
			}
		case needsSuffix:
			if node.Needs == nil {
				node.Needs = s.needs
			}
		case indexSuffix:
			if node.Index == nil {
				node.Index = s.index
			}
		case passSuffix:
			applyPass(node, s)
		}
	}
}

func applyPass(node *ast.ConfigNode, s passSuffix) {
	switch s.kind {
	case passFirst:
		node.First = true
	case passFinal:
		node.Final = true
	case passBefore:
		if node.Before == "" {
			node.Before = s.target
		}
	case passFor:
		if node.For == "" {
			node.For = s.target
		}
	case passAfter:
		if node.After == "" {
			node.After = s.target
		}
	case passLast:
		if node.Last == "" {
			node.Last = s.target
		}
	}
}

// applyPathSuffixes resolves the :HAS and index clauses of a path segment.
func applyPathSuffixes(piece *ast.NodePathPiece, suffixes []suffix) {
	for _, s := range suffixes {
		switch s := s.(type) {
		case hasSuffix:
			if piece.Has == nil {
				piece.Has = s.has
			}
		case indexSuffix:
			if piece.Index == nil {
				piece.Index = s.index
			}
		}
	}
}
