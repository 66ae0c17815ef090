package mmcfg

import (
	"strings"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// NeedsKind names the construct a NEEDS clause is attached to.
type NeedsKind string

const (
	NeedsOnNode     NeedsKind = "node"
	NeedsOnProperty NeedsKind = "property"
	NeedsOnPaste    NeedsKind = "paste"
)

// NeedsUse is one NEEDS clause found in a document, evaluated against a
// set of installed mods.
type NeedsUse struct {
	Kind      NeedsKind
	Subject   string // node header, property key or paste path
	Needs     *ast.NeedsAnd
	Satisfied bool
	Location  ast.Location
}

// CollectNeeds returns every NEEDS clause of doc in document order.
func CollectNeeds(doc *ast.Document, installed ast.Installed) []NeedsUse {
	c := &needsCollector{installed: installed, file: doc.Path}
	_ = ast.Walk(doc.Nodes, c)
	return c.uses
}

type needsCollector struct {
	installed ast.Installed
	file      string
	uses      []NeedsUse
}

func (c *needsCollector) add(kind NeedsKind, subject string, needs *ast.NeedsAnd, loc ast.Location) {
	if needs == nil {
		return
	}
	if loc.File == "" {
		loc.File = c.file
	}
	c.uses = append(c.uses, NeedsUse{
		Kind:      kind,
		Subject:   subject,
		Needs:     needs,
		Satisfied: needs.Satisfies(c.installed),
		Location:  loc,
	})
}

func (c *needsCollector) VisitNode(node *ast.ConfigNode, depth int) error {
	subject := node.Operator.Glyph() + node.Name
	if len(node.Filters) > 0 {
		subject += "[" + strings.Join(node.Filters, "|") + "]"
	}
	c.add(NeedsOnNode, subject, node.Needs, node.Location)
	return nil
}

func (c *needsCollector) VisitProperty(property *ast.ConfigProperty, parent *ast.ConfigNode) error {
	c.add(NeedsOnProperty, property.Operator.Glyph()+property.Key(), property.Needs, property.Location)
	return nil
}

func (c *needsCollector) VisitPaste(paste *ast.PasteNode, parent *ast.ConfigNode) error {
	c.add(NeedsOnPaste, "#"+paste.Path.String(), paste.Needs, paste.Location)
	return nil
}
