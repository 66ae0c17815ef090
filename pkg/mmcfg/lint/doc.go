// Package lint reports patch constructs that parse but are likely
// mistakes.
//
// The grammar accepts more than a patch engine acts on. A node may carry
// several pass markers, a nested node may carry one, and an inserted node
// may carry selectors that only mean something on a patch. A :NEEDS
// clause may also always or never hold.
//
// # Basic Usage
//
//	nodes, err := parser.ParseDocument(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, w := range lint.NewLinter().Lint(nodes) {
//	    fmt.Println(w)
//	}
//
// In strict mode Check returns a *StrictError whenever there are warnings:
//
//	warnings, err := lint.NewLinter(lint.WithStrict(true)).Check(doc)
//
// # Rules
//
//   - multiple-passes: more than one of :FIRST, :BEFORE, :FOR, :AFTER,
//     :LAST and :FINAL on one node
//   - pass-on-child: a pass marker on a nested node
//   - insert-with-selector: filters, :HAS or an index on a node with no
//     operator
//   - needs-tautology: an OR group holding A and !A
//   - needs-contradiction: single-mod groups requiring both A and !A
package lint
