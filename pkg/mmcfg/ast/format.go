package ast

import (
	"bufio"
	"io"
	"strings"
)

// Format writes nodes in canonical form: one construct per line, tab
// indentation, braces on their own lines. Comments and original spacing
// are not preserved, and within a body properties come first, then paste
// directives, then child nodes. Parsing the output yields an equal tree
// apart from locations.
func Format(w io.Writer, nodes []*ConfigNode) error {
	bw := bufio.NewWriter(w)
	for i, node := range nodes {
		if i > 0 {
			bw.WriteByte('\n')
		}
		formatNode(bw, node, 0)
	}
	return bw.Flush()
}

// FormatString is Format into a string.
func FormatString(nodes []*ConfigNode) string {
	var sb strings.Builder
	_ = Format(&sb, nodes)
	return sb.String()
}

func formatNode(w *bufio.Writer, node *ConfigNode, depth int) {
	indent := strings.Repeat("\t", depth)
	w.WriteString(indent + node.Header() + "\n")
	w.WriteString(indent + "{\n")
	for _, property := range node.Properties {
		w.WriteString(indent + "\t" + property.String() + "\n")
	}
	for _, paste := range node.Pastes {
		header := "#" + paste.Path.String()
		if paste.Needs != nil {
			header += paste.Needs.String()
		}
		w.WriteString(indent + "\t" + header + "\n")
		w.WriteString(indent + "\t{\n")
		w.WriteString(indent + "\t}\n")
	}
	for _, child := range node.Children {
		formatNode(w, child, depth+1)
	}
	w.WriteString(indent + "}\n")
}
