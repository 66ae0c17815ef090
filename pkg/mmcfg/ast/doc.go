// Package ast defines the parse tree for Module Manager patch files.
//
// A patch file is a sequence of nodes. Each node carries an operator, a
// name, optional selector clauses (filters, :HAS, :NEEDS, a positional
// index), pass markers (:FIRST, :BEFORE, :FOR, :AFTER, :LAST, :FINAL) and
// a body of properties, child nodes and paste directives.
//
// # Core Types
//
// ConfigNode: a brace-delimited block and everything parsed from its header
//
// ConfigProperty: one assignment line, either by name or by external node path
//
// PasteNode: a #-prefixed copy directive (path and precondition only)
//
// NeedsAnd, NeedsOr, NeedsMod: the :NEEDS precondition, evaluated with Satisfies
//
// Has, HasPiece: the :HAS structural predicate
//
// Index, ArrayIndex: positional selectors for sibling sequences and value tokens
//
// Location: source location (file, line, column)
//
// Every value in the tree is built once by the parser and never mutated
// afterwards. Children hold no reference to their parent.
//
// # Basic Usage
//
//	nodes, err := parser.ParseDocument(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	installed := ast.NewInstalled("RealFuels", "B9PartSwitch")
//	for _, node := range nodes {
//	    if node.Needs != nil && !node.Needs.Satisfies(installed) {
//	        continue
//	    }
//	    fmt.Println(node.Operator, node.Name)
//	}
//
// Use Walk with a Visitor to traverse nested nodes, and Format to write a
// tree back out in canonical form.
package ast
