package ast

import "strings"

// NodePathPiece is one '/'-separated segment of a node path. A parent
// segment ("..") has OperatorParentNode, an empty name and no other fields.
type NodePathPiece struct {
	Operator Operator // OperatorPathRelative, OperatorPathRoot or OperatorParentNode
	Name     string
	Filters  []string
	Has      *Has
	Index    *Index
}

// IsParent returns true for the ".." segment.
func (p *NodePathPiece) IsParent() bool {
	return p.Operator == OperatorParentNode
}

func (p *NodePathPiece) String() string {
	if p.IsParent() {
		return ".."
	}
	var sb strings.Builder
	if p.Operator == OperatorPathRoot {
		sb.WriteByte('@')
	}
	sb.WriteString(p.Name)
	writeFilters(&sb, p.Filters)
	if p.Has != nil {
		sb.WriteString(p.Has.String())
	}
	if p.Index != nil {
		sb.WriteString(p.Index.String())
	}
	return sb.String()
}

// NodePath is a sequence of path segments. A nil first element marks a
// path anchored at the document root ("/A/B").
type NodePath []*NodePathPiece

// IsAbsolute reports whether the path starts with the root marker.
func (p NodePath) IsAbsolute() bool {
	return len(p) > 0 && p[0] == nil
}

func (p NodePath) String() string {
	var sb strings.Builder
	for i, piece := range p {
		if piece == nil {
			sb.WriteByte('/')
			continue
		}
		if i > 0 && p[i-1] != nil {
			sb.WriteByte('/')
		}
		sb.WriteString(piece.String())
	}
	return sb.String()
}

// PasteNode is a #path directive. Its body is consumed by the parser but
// not retained.
type PasteNode struct {
	Path     NodePath
	Needs    *NeedsAnd
	Location Location
}

func writeFilters(sb *strings.Builder, filters []string) {
	if len(filters) == 0 {
		return
	}
	sb.WriteByte('[')
	sb.WriteString(strings.Join(filters, "|"))
	sb.WriteByte(']')
}
