package mmcfg

import (
	"kspmm/mmcfg/pkg/mmcfg/ast"
	"kspmm/mmcfg/pkg/mmcfg/lint"
	"kspmm/mmcfg/pkg/mmcfg/parser"
)

// ParseAndLint is a convenience function that parses a patch file and lints
// it. Syntax errors are returned as-is; lint warnings become an error only
// when the linter is strict.
func ParseAndLint(path string, opts ...lint.Option) (*ast.Document, []lint.Warning, error) {
	p := parser.NewParser()
	doc, err := p.Parse(path)
	if err != nil {
		return nil, nil, err
	}

	warnings, err := lint.NewLinter(opts...).Check(doc)
	if err != nil {
		return doc, warnings, err
	}

	return doc, warnings, nil
}

// ParseAndLintBytes is ParseAndLint for in-memory content.
func ParseAndLintBytes(data []byte, sourcePath string, opts ...lint.Option) (*ast.Document, []lint.Warning, error) {
	p := parser.NewParser()
	doc, err := p.ParseBytes(data, sourcePath)
	if err != nil {
		return nil, nil, err
	}

	warnings, err := lint.NewLinter(opts...).Check(doc)
	return doc, warnings, err
}

// ParseFile parses a patch file without linting.
func ParseFile(path string) (*ast.Document, error) {
	p := parser.NewParser()
	return p.Parse(path)
}

// Lint lints a parsed document with the default rules.
func Lint(doc *ast.Document) []lint.Warning {
	return lint.NewLinter().Lint(doc.Nodes)
}
