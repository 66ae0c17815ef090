// Package errors provides the syntax error type for patch file parsing.
//
// The parser reports exactly one kind of error, SyntaxError, carrying the
// location where the input stopped matching and the constructs that were
// expected there. Callers that have the source text at hand can enrich an
// error with a source excerpt and a suggestion.
//
// # Basic Usage
//
//	nodes, err := parser.ParseDocument(src)
//	var syntaxErr *errors.SyntaxError
//	if stderrors.As(err, &syntaxErr) {
//	    fmt.Println(syntaxErr.Line(), syntaxErr.Column(), syntaxErr.Message)
//	}
//
// # Error Format
//
// Error() renders a single line suitable for compilers and editors:
//
//	GameData/MyMod/patch.cfg:12:17: unexpected end of input, expected "]"
//
// Detailed() renders the excerpt and suggestion:
//
//	[syntax] unexpected "{", expected "]"
//	  --> GameData/MyMod/patch.cfg:3:24
//	  |
//	   2 |
//	-> 3 | @PART[*]:NEEDS[RealFuels{
//	     |                         ^
//	  |
//	  = suggestion: Close the bracket with ']'
//
// # Suggestions
//
// SuggestClause uses Levenshtein distance to recognize misspelled clause
// labels such as ":NEDS[" or ":BEFOR[".
package errors
