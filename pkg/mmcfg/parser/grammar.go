package parser

import (
	"sync"

	"kspmm/mmcfg/pkg/mmcfg/ast"
	mmerrors "kspmm/mmcfg/pkg/mmcfg/errors"
)

// grammar holds every entry-point rule. It is built once and shared; the
// rules hold no mutable state.
type grammar struct {
	document   parser[[]*ast.ConfigNode]
	node       parser[*ast.ConfigNode]
	property   parser[*ast.ConfigProperty]
	needs      parser[*ast.NeedsAnd]
	needsExpr  parser[*ast.NeedsAnd]
	has        parser[*ast.Has]
	nodePath   parser[ast.NodePath]
	index      parser[*ast.Index]
	arrayIndex parser[*ast.ArrayIndex]
}

var rules = sync.OnceValue(func() *grammar {
	node := configNode()
	return &grammar{
		document:   document(node),
		node:       whole(node),
		property:   whole(property()),
		needs:      whole(needsClause()),
		needsExpr:  whole(needsExpression()),
		has:        whole(hasClause()),
		nodePath:   whole(nodePath()),
		index:      whole(index()),
		arrayIndex: whole(arrayIndex()),
	}
})

// whole allows junk around p and requires the entire input to match.
func whole[T any](p parser[T]) parser[T] {
	return left(between(junk(), p, junk()), endOfInput())
}

// run applies p to src and converts a failure into a SyntaxError.
func run[T any](p parser[T], src, file string) (T, error) {
	in := newInput(src, file)
	value, _, f := p(in, 0)
	if f != nil {
		var zero T
		return zero, in.syntaxError(f)
	}
	return value, nil
}

func (in *input) syntaxError(f *failure) *mmerrors.SyntaxError {
	err := &mmerrors.SyntaxError{
		Location: in.location(f.pos),
		Message:  f.message(in),
	}
	if s := mmerrors.SuggestClause(in.src[f.pos:]); s != "" {
		err.Suggestion = s
	} else {
		err.Suggestion = mmerrors.SuggestClosing(f.expected)
	}
	return err
}

// ParseDocument parses a whole file into its top-level nodes. An empty or
// comment-only input yields no nodes and no error. Any malformed construct
// fails the entire parse with a *errors.SyntaxError.
func ParseDocument(text string) ([]*ast.ConfigNode, error) {
	return run(rules().document, text, "")
}

// ParseNode parses a single node, allowing surrounding whitespace and
// comments.
func ParseNode(text string) (*ast.ConfigNode, error) {
	return run(rules().node, text, "")
}

// ParseProperty parses a single assignment line.
func ParseProperty(text string) (*ast.ConfigProperty, error) {
	return run(rules().property, text, "")
}

// ParseNeedsClause parses ":NEEDS[...]".
func ParseNeedsClause(text string) (*ast.NeedsAnd, error) {
	return run(rules().needs, text, "")
}

// ParseNeeds parses a bare NEEDS expression such as "A|B,!C".
func ParseNeeds(text string) (*ast.NeedsAnd, error) {
	return run(rules().needsExpr, text, "")
}

// ParseHas parses ":HAS[...]".
func ParseHas(text string) (*ast.Has, error) {
	return run(rules().has, text, "")
}

// ParseNodePath parses a paste or external value path such as
// "@PART[x]/MODULE,0" or "../A".
func ParseNodePath(text string) (ast.NodePath, error) {
	return run(rules().nodePath, text, "")
}

// ParseIndex parses ",N" or ",*".
func ParseIndex(text string) (*ast.Index, error) {
	return run(rules().index, text, "")
}

// ParseArrayIndex parses "[N]", "[*]" or "[N,X]".
func ParseArrayIndex(text string) (*ast.ArrayIndex, error) {
	return run(rules().arrayIndex, text, "")
}
