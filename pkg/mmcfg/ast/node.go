package ast

import "strings"

// ConfigNode is one brace-delimited block.
//
// The pass markers (First, Before, For, After, Last, Final) and the
// selector clauses (Needs, Has, Index) each hold the first occurrence of
// their kind in the header. Later duplicates are accepted by the grammar
// and dropped.
type ConfigNode struct {
	Operator Operator
	Name     string
	Filters  []string // nil when no [filter] bracket was written
	Needs    *NeedsAnd
	Has      *Has
	Index    *Index

	First  bool   // :FIRST
	Before string // :BEFORE[mod]
	For    string // :FOR[mod]
	After  string // :AFTER[mod]
	Last   string // :LAST[mod]
	Final  bool   // :FINAL

	Properties []*ConfigProperty
	Children   []*ConfigNode
	Pastes     []*PasteNode

	Location Location
}

// IsPatch returns true when the node modifies existing nodes rather than
// inserting a new one.
func (n *ConfigNode) IsPatch() bool {
	return n.Operator != OperatorInsert
}

// Passes returns the pass markers set on the node, in pass order.
func (n *ConfigNode) Passes() []string {
	var passes []string
	if n.First {
		passes = append(passes, ":FIRST")
	}
	if n.Before != "" {
		passes = append(passes, ":BEFORE["+n.Before+"]")
	}
	if n.For != "" {
		passes = append(passes, ":FOR["+n.For+"]")
	}
	if n.After != "" {
		passes = append(passes, ":AFTER["+n.After+"]")
	}
	if n.Last != "" {
		passes = append(passes, ":LAST["+n.Last+"]")
	}
	if n.Final {
		passes = append(passes, ":FINAL")
	}
	return passes
}

// Header returns the canonical header of the node: operator, name,
// filters and every suffix clause.
func (n *ConfigNode) Header() string {
	var sb strings.Builder
	sb.WriteString(n.Operator.Glyph())
	sb.WriteString(n.Name)
	writeFilters(&sb, n.Filters)
	if n.Has != nil {
		sb.WriteString(n.Has.String())
	}
	if n.Needs != nil {
		sb.WriteString(n.Needs.String())
	}
	if n.Index != nil {
		sb.WriteString(n.Index.String())
	}
	for _, pass := range n.Passes() {
		sb.WriteString(pass)
	}
	return sb.String()
}

// Document is a parsed file.
type Document struct {
	Path  string
	Nodes []*ConfigNode
}
