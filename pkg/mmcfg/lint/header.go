package lint

import (
	"fmt"
	"strings"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// HeaderLinter checks node headers: pass markers and selector clauses.
// A HeaderLinter collects state and serves a single walk.
type HeaderLinter struct {
	warnings []Warning
}

// NewHeaderLinter creates a header linter.
func NewHeaderLinter() *HeaderLinter {
	return &HeaderLinter{}
}

func (h *HeaderLinter) VisitNode(node *ast.ConfigNode, depth int) error {
	passes := node.Passes()

	if len(passes) > 1 {
		h.add(Warning{
			Rule:       RuleMultiplePasses,
			Message:    fmt.Sprintf("node %q sets more than one pass: %s", node.Name, strings.Join(passes, " ")),
			Location:   node.Location,
			Suggestion: "Keep a single pass marker; the patch runs in one pass only",
		})
	}

	if depth > 0 && len(passes) > 0 {
		h.add(Warning{
			Rule:       RulePassOnChild,
			Message:    fmt.Sprintf("pass marker %s on nested node %q", passes[0], node.Name),
			Location:   node.Location,
			Suggestion: "Move the pass marker to the top-level node",
		})
	}

	if !node.IsPatch() {
		var selectors []string
		if node.Filters != nil {
			selectors = append(selectors, "filters")
		}
		if node.Has != nil {
			selectors = append(selectors, ":HAS")
		}
		if node.Index != nil {
			selectors = append(selectors, "an index")
		}
		if len(selectors) > 0 {
			h.add(Warning{
				Rule:       RuleInsertWithSelector,
				Message:    fmt.Sprintf("inserted node %q carries %s", node.Name, strings.Join(selectors, " and ")),
				Location:   node.Location,
				Suggestion: "Selectors only apply to patches; add an operator such as '@' or drop them",
			})
		}
	}

	return nil
}

func (h *HeaderLinter) VisitProperty(*ast.ConfigProperty, *ast.ConfigNode) error { return nil }

func (h *HeaderLinter) VisitPaste(*ast.PasteNode, *ast.ConfigNode) error { return nil }

func (h *HeaderLinter) add(w Warning) {
	h.warnings = append(h.warnings, w)
}

func (h *HeaderLinter) take() []Warning {
	w := h.warnings
	h.warnings = nil
	return w
}
