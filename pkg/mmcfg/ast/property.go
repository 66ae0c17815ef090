package ast

import "strings"

// ConfigProperty is one assignment line. Exactly one of Name and Path is
// set: Path is used by the external value form (*path = value), whose
// Operator is always OperatorExternalValueAccess.
type ConfigProperty struct {
	Operator           Operator
	Name               string
	Path               NodePath
	Needs              *NeedsAnd
	Index              *Index
	ArrayIndex         *ArrayIndex
	AssignmentOperator AssignmentOperator
	Value              string
	Location           Location
}

// IsExternal returns true for the external value form.
func (p *ConfigProperty) IsExternal() bool {
	return p.Path != nil
}

// Key returns the left-hand side as written, without the operator glyph
// and suffixes.
func (p *ConfigProperty) Key() string {
	if p.IsExternal() {
		return p.Path.String()
	}
	return p.Name
}

// String returns the canonical single-line form of the property.
func (p *ConfigProperty) String() string {
	var sb strings.Builder
	sb.WriteString(p.Operator.Glyph())
	sb.WriteString(p.Key())
	if p.Needs != nil {
		sb.WriteString(p.Needs.String())
	}
	if p.Index != nil {
		sb.WriteString(p.Index.String())
	}
	if p.ArrayIndex != nil {
		sb.WriteString(p.ArrayIndex.String())
	}
	sb.WriteByte(' ')
	sb.WriteString(string(p.AssignmentOperator))
	if p.Value != "" {
		sb.WriteByte(' ')
		sb.WriteString(p.Value)
	}
	return sb.String()
}
