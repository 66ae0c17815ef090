package ast

// Visitor provides an interface for traversing the tree.
// Implement this interface to analyze nodes, properties and paste
// directives (linting, NEEDS reports, statistics).
type Visitor interface {
	VisitNode(node *ConfigNode, depth int) error
	VisitProperty(property *ConfigProperty, parent *ConfigNode) error
	VisitPaste(paste *PasteNode, parent *ConfigNode) error
}

// Walk traverses nodes depth-first. For each node it visits the node
// itself, then its properties, its paste directives and finally its
// children. It returns the first error a visitor method returns.
func Walk(nodes []*ConfigNode, visitor Visitor) error {
	for _, node := range nodes {
		if err := walkNode(node, 0, visitor); err != nil {
			return err
		}
	}
	return nil
}

func walkNode(node *ConfigNode, depth int, visitor Visitor) error {
	if err := visitor.VisitNode(node, depth); err != nil {
		return err
	}

	for _, property := range node.Properties {
		if err := visitor.VisitProperty(property, node); err != nil {
			return err
		}
	}

	for _, paste := range node.Pastes {
		if err := visitor.VisitPaste(paste, node); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := walkNode(child, depth+1, visitor); err != nil {
			return err
		}
	}

	return nil
}
