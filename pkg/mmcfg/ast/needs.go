package ast

import (
	"sort"
	"strings"
)

// Installed is the set of capability (mod) names a :NEEDS clause is
// evaluated against. Names are case-sensitive.
type Installed map[string]struct{}

// NewInstalled builds an Installed set from names.
func NewInstalled(names ...string) Installed {
	set := make(Installed, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether name is installed.
func (s Installed) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the installed names in sorted order.
func (s Installed) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NeedsMod is a single, optionally negated, capability name.
type NeedsMod struct {
	Name    string
	Negated bool
}

// Satisfies returns true when the mod is installed, or when it is negated
// and not installed.
func (m NeedsMod) Satisfies(installed Installed) bool {
	return installed.Has(m.Name) != m.Negated
}

func (m NeedsMod) String() string {
	if m.Negated {
		return "!" + m.Name
	}
	return m.Name
}

// NeedsOr holds alternatives separated by '|'. Any one of them suffices.
type NeedsOr struct {
	Mods []NeedsMod
}

// Satisfies returns true if any member is satisfied.
func (o *NeedsOr) Satisfies(installed Installed) bool {
	for _, mod := range o.Mods {
		if mod.Satisfies(installed) {
			return true
		}
	}
	return false
}

func (o *NeedsOr) String() string {
	parts := make([]string, len(o.Mods))
	for i, mod := range o.Mods {
		parts[i] = mod.String()
	}
	return strings.Join(parts, "|")
}

// NeedsAnd is the root of a :NEEDS clause. Groups are separated by '&' or
// ',' and all of them must hold.
type NeedsAnd struct {
	Groups []*NeedsOr
}

// Satisfies evaluates the clause against the installed set. It has no side
// effects and is safe for concurrent use.
func (a *NeedsAnd) Satisfies(installed Installed) bool {
	for _, group := range a.Groups {
		if !group.Satisfies(installed) {
			return false
		}
	}
	return true
}

// Expression returns the clause body without the :NEEDS[ ] delimiters.
func (a *NeedsAnd) Expression() string {
	parts := make([]string, len(a.Groups))
	for i, group := range a.Groups {
		parts[i] = group.String()
	}
	return strings.Join(parts, ",")
}

func (a *NeedsAnd) String() string {
	return ":NEEDS[" + a.Expression() + "]"
}
