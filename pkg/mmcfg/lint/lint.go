package lint

import (
	"fmt"
	"sort"
	"strings"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

// Rule names reported in Warning.Rule.
const (
	RuleMultiplePasses     = "multiple-passes"
	RulePassOnChild        = "pass-on-child"
	RuleInsertWithSelector = "insert-with-selector"
	RuleNeedsTautology     = "needs-tautology"
	RuleNeedsContradiction = "needs-contradiction"
)

// Rules lists every rule the linter runs.
var Rules = []string{
	RuleMultiplePasses,
	RulePassOnChild,
	RuleInsertWithSelector,
	RuleNeedsTautology,
	RuleNeedsContradiction,
}

// Warning is a construct the grammar accepts but a patch engine is likely
// to ignore or misread.
type Warning struct {
	Rule       string
	Message    string
	Location   ast.Location
	Suggestion string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s [%s]", w.Location, w.Message, w.Rule)
}

// StrictError is returned by Check in strict mode when a document has
// warnings.
type StrictError struct {
	Warnings []Warning
}

func (e *StrictError) Error() string {
	if len(e.Warnings) == 1 {
		return e.Warnings[0].String()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d lint warnings:", len(e.Warnings)))
	for _, w := range e.Warnings {
		sb.WriteString("\n  ")
		sb.WriteString(w.String())
	}
	return sb.String()
}

// Linter runs the header and :NEEDS passes over parsed documents. It is
// safe for concurrent use.
type Linter struct {
	strict   bool
	disabled map[string]bool
}

// Option configures a Linter.
type Option func(*Linter)

// WithStrict makes Check fail on any warning.
func WithStrict(strict bool) Option {
	return func(l *Linter) { l.strict = strict }
}

// WithDisabled turns off the named rules.
func WithDisabled(rules ...string) Option {
	return func(l *Linter) {
		for _, rule := range rules {
			l.disabled[rule] = true
		}
	}
}

// NewLinter creates a linter running every rule.
func NewLinter(opts ...Option) *Linter {
	l := &Linter{
		disabled: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Strict reports whether the linter fails on warnings.
func (l *Linter) Strict() bool { return l.strict }

// Lint returns the warnings for nodes ordered by location.
func (l *Linter) Lint(nodes []*ast.ConfigNode) []Warning {
	header := NewHeaderLinter()
	needs := NewNeedsLinter()
	_ = ast.Walk(nodes, header)
	_ = ast.Walk(nodes, needs)

	var warnings []Warning
	warnings = append(warnings, header.take()...)
	warnings = append(warnings, needs.take()...)

	kept := warnings[:0]
	for _, w := range warnings {
		if !l.disabled[w.Rule] {
			kept = append(kept, w)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i].Location, kept[j].Location
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return kept
}

// Check lints doc and attributes warnings to its path. In strict mode a
// non-empty result is also returned as a *StrictError.
func (l *Linter) Check(doc *ast.Document) ([]Warning, error) {
	warnings := l.Lint(doc.Nodes)
	for i := range warnings {
		if !warnings[i].Location.IsValid() {
			continue
		}
		if warnings[i].Location.File == "" {
			warnings[i].Location.File = doc.Path
		}
	}
	if l.strict && len(warnings) > 0 {
		return warnings, &StrictError{Warnings: warnings}
	}
	return warnings, nil
}
