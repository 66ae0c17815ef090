package lint

import (
	"fmt"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// NeedsLinter checks :NEEDS clauses on nodes, properties and paste
// directives for groups that always or never hold.
type NeedsLinter struct {
	warnings []Warning
}

// NewNeedsLinter creates a :NEEDS linter.
func NewNeedsLinter() *NeedsLinter {
	return &NeedsLinter{}
}

func (n *NeedsLinter) VisitNode(node *ast.ConfigNode, _ int) error {
	n.check(node.Needs, node.Location)
	return nil
}

func (n *NeedsLinter) VisitProperty(property *ast.ConfigProperty, _ *ast.ConfigNode) error {
	n.check(property.Needs, property.Location)
	return nil
}

func (n *NeedsLinter) VisitPaste(paste *ast.PasteNode, _ *ast.ConfigNode) error {
	n.check(paste.Needs, paste.Location)
	return nil
}

func (n *NeedsLinter) check(needs *ast.NeedsAnd, loc ast.Location) {
	if needs == nil {
		return
	}

	for _, group := range needs.Groups {
		if name, ok := selfCancelling(group.Mods); ok {
			n.warnings = append(n.warnings, Warning{
				Rule:       RuleNeedsTautology,
				Message:    fmt.Sprintf("%s always holds: %q appears plain and negated in %q", needs, name, group),
				Location:   loc,
				Suggestion: "Remove the group or one of its alternatives",
			})
		}
	}

	// Only single-mod groups are unconditional requirements.
	var required []ast.NeedsMod
	for _, group := range needs.Groups {
		if len(group.Mods) == 1 {
			required = append(required, group.Mods[0])
		}
	}
	if name, ok := selfCancelling(required); ok {
		n.warnings = append(n.warnings, Warning{
			Rule:       RuleNeedsContradiction,
			Message:    fmt.Sprintf("%s never holds: %q is both required and excluded", needs, name),
			Location:   loc,
			Suggestion: fmt.Sprintf("Keep either %q or \"!%s\"", name, name),
		})
	}
}

func (n *NeedsLinter) take() []Warning {
	w := n.warnings
	n.warnings = nil
	return w
}

// selfCancelling returns the first name that occurs both plain and
// negated in mods.
func selfCancelling(mods []ast.NeedsMod) (string, bool) {
	seen := make(map[string]bool, len(mods))
	for _, mod := range mods {
		if negated, ok := seen[mod.Name]; ok && negated != mod.Negated {
			return mod.Name, true
		}
		seen[mod.Name] = mod.Negated
	}
	return "", false
}
