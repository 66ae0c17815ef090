package ast

import "strings"

// HasKind is the kind of check a :HAS piece performs.
type HasKind string

const (
	HasNode       HasKind = "node"        // @key
	HasNoNode     HasKind = "no_node"     // !key
	HasProperty   HasKind = "property"    // #key
	HasNoProperty HasKind = "no_property" // ~key
)

// Glyph returns the source glyph of the kind.
func (k HasKind) Glyph() string {
	switch k {
	case HasNode:
		return "@"
	case HasNoNode:
		return "!"
	case HasProperty:
		return "#"
	case HasNoProperty:
		return "~"
	default:
		return ""
	}
}

// HasPiece is one condition of a :HAS clause. Value is nil when no
// [value] bracket was written. A nested clause constrains the nodes this
// piece matches.
type HasPiece struct {
	Kind  HasKind
	Key   string
	Value *string
	Has   *Has
}

func (p *HasPiece) String() string {
	var sb strings.Builder
	sb.WriteString(p.Kind.Glyph())
	sb.WriteString(p.Key)
	if p.Value != nil {
		sb.WriteByte('[')
		sb.WriteString(*p.Value)
		sb.WriteByte(']')
	}
	if p.Has != nil {
		sb.WriteString(p.Has.String())
	}
	return sb.String()
}

// Has is a :HAS clause. All pieces must hold.
type Has struct {
	Pieces []*HasPiece
}

func (h *Has) String() string {
	parts := make([]string, len(h.Pieces))
	for i, piece := range h.Pieces {
		parts[i] = piece.String()
	}
	return ":HAS[" + strings.Join(parts, ",") + "]"
}
