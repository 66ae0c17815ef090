// Package parser turns Module Manager patch files into ast trees.
//
// The grammar is written with small parser combinators. Each rule is a
// pure function of the input text and a position, so one set of rules,
// built on first use, serves every goroutine.
//
// # Basic Usage
//
// Parse text already in memory:
//
//	nodes, err := parser.ParseDocument("@PART[*]:HAS[#engineType]:NEEDS[RealFuels]\n{\n\t%cost = 100\n}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse a file with size limits and source excerpts in errors:
//
//	p := parser.NewParser().WithMaxFileSize(5 * 1024 * 1024)
//	doc, err := p.Parse("GameData/MyMod/patches.cfg")
//
// Single constructs can be parsed on their own with ParseNode,
// ParseProperty, ParseNeeds, ParseNeedsClause, ParseHas, ParseNodePath,
// ParseIndex and ParseArrayIndex.
//
// # Error Handling
//
// Every grammar failure is a *errors.SyntaxError with a 1-based line and
// column. Alternatives that fail without consuming input are retried as
// the next alternative. A node header clause, child node or paste
// directive that fails after consuming input is reported where it failed,
// so a malformed ":NEEDS[A" points at the missing ']' rather than at the
// start of the node.
//
// A property is the exception: it only counts as started once its
// assignment operator has matched. Before that point a body line such as
// "MODULE" or "#path" falls through to the child node and paste rules.
//
// # Duplicate Clauses
//
// A header may repeat a clause kind (two :NEEDS clauses, say). The first
// occurrence is kept and the rest are dropped silently. Existing files
// rely on this, so it is kept even though it is likely unintended.
package parser
