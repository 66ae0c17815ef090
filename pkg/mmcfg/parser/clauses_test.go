package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"kspmm/mmcfg/pkg/mmcfg/ast"
)

func TestParseNeeds_Satisfies(t *testing.T) {
	tests := []struct {
		expr      string
		installed []string
		want      bool
	}{
		{"A|B", []string{"A"}, true},
		{"A|B", []string{"B"}, true},
		{"A|B", nil, false},
		{"A&!B", []string{"A"}, true},
		{"A&!B", []string{"A", "B"}, false},
		{"A|B,!C|D|E", []string{"A", "C", "D"}, true},
		{"RealFuels|ModularFuelSystem", []string{"RealFuels", "Anything"}, true},
		{"RealFuels|ModularFuelSystem", []string{"SomethingElse"}, false},
		{"RealFuels&!ModularFuelSystem", []string{"ModularFuelSystem"}, false},
		{"Mod1|Mod2,!Mod3|Mod4|Mod_5", []string{"Mod1", "Mod3"}, false},
		{"Mod1|Mod2,!Mod3|Mod4|Mod_5", []string{"Mod2"}, true},
		{"!A", nil, true},
		{"Path/To-Mod?", []string{"Path/To-Mod?"}, true},
		{"realfuels", []string{"RealFuels"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			needs, err := ParseNeeds(tt.expr)
			if err != nil {
				t.Fatalf("ParseNeeds(%q) failed: %v", tt.expr, err)
			}
			if got := needs.Satisfies(ast.NewInstalled(tt.installed...)); got != tt.want {
				t.Errorf("Satisfies(%v) = %v, want %v", tt.installed, got, tt.want)
			}
		})
	}
}

func TestParseNeedsClause(t *testing.T) {
	needs, err := ParseNeedsClause(":NEEDS[Mod1|Mod2,!Mod3&Mod4]")
	if err != nil {
		t.Fatalf("ParseNeedsClause() failed: %v", err)
	}

	want := &ast.NeedsAnd{Groups: []*ast.NeedsOr{
		{Mods: []ast.NeedsMod{{Name: "Mod1"}, {Name: "Mod2"}}},
		{Mods: []ast.NeedsMod{{Name: "Mod3", Negated: true}}},
		{Mods: []ast.NeedsMod{{Name: "Mod4"}}},
	}}
	if diff := cmp.Diff(want, needs); diff != "" {
		t.Errorf("ParseNeedsClause() mismatch (-want +got):\n%s", diff)
	}
	if got, want := needs.String(), ":NEEDS[Mod1|Mod2,!Mod3,Mod4]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	for _, bad := range []string{":NEEDS[]", ":NEEDS[A", ":needs[A]", ":NEEDS[A||B]"} {
		if _, err := ParseNeedsClause(bad); err == nil {
			t.Errorf("ParseNeedsClause(%q) succeeded, want error", bad)
		}
	}
}

func TestParseHas(t *testing.T) {
	t.Run("operators", func(t *testing.T) {
		has, err := ParseHas(":HAS[@NODE,!NONODE,#PROP,~NOPROP]")
		if err != nil {
			t.Fatalf("ParseHas() failed: %v", err)
		}
		want := []ast.HasKind{ast.HasNode, ast.HasNoNode, ast.HasProperty, ast.HasNoProperty}
		if len(has.Pieces) != len(want) {
			t.Fatalf("len(Pieces) = %d, want %d", len(has.Pieces), len(want))
		}
		for i, kind := range want {
			if has.Pieces[i].Kind != kind {
				t.Errorf("Pieces[%d].Kind = %q, want %q", i, has.Pieces[i].Kind, kind)
			}
		}
	})

	t.Run("values", func(t *testing.T) {
		has, err := ParseHas(":HAS[#model[a/b/c/d]&@EMPTY[]]")
		if err != nil {
			t.Fatalf("ParseHas() failed: %v", err)
		}
		want := &ast.Has{Pieces: []*ast.HasPiece{
			{Kind: ast.HasProperty, Key: "model", Value: strPtr("a/b/c/d")},
			{Kind: ast.HasNode, Key: "EMPTY", Value: strPtr("")},
		}}
		if diff := cmp.Diff(want, has); diff != "" {
			t.Errorf("ParseHas() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nested", func(t *testing.T) {
		has, err := ParseHas(":HAS[@MODULE[ModuleEngines]:HAS[@PROPELLANT[XenonGas],@PROPELLANT[ElectricCharge]],#mass]")
		if err != nil {
			t.Fatalf("ParseHas() failed: %v", err)
		}
		want := &ast.Has{Pieces: []*ast.HasPiece{
			{
				Kind: ast.HasNode, Key: "MODULE", Value: strPtr("ModuleEngines"),
				Has: &ast.Has{Pieces: []*ast.HasPiece{
					{Kind: ast.HasNode, Key: "PROPELLANT", Value: strPtr("XenonGas")},
					{Kind: ast.HasNode, Key: "PROPELLANT", Value: strPtr("ElectricCharge")},
				}},
			},
			{Kind: ast.HasProperty, Key: "mass"},
		}}
		if diff := cmp.Diff(want, has); diff != "" {
			t.Errorf("ParseHas() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, bad := range []string{":HAS[]", ":HAS[NODE]", ":HAS[@]", ":HAS[@A", ":has[@A]"} {
			if _, err := ParseHas(bad); err == nil {
				t.Errorf("ParseHas(%q) succeeded, want error", bad)
			}
		}
	})
}

func TestIndex_Satisfies(t *testing.T) {
	tests := []struct {
		input    string
		position int
		total    int
		want     bool
	}{
		{",0", 0, 5, true},
		{",0", 1, 5, false},
		{",1", 1, 5, true},
		{",-1", 4, 5, true},
		{",-1", 0, 5, false},
		{",-5", 0, 5, true},
		{",*", 0, 5, true},
		{",*", 1, 5, true},
		{",*", 2, 5, true},
		{",*", 7, 0, true},
	}

	for _, tt := range tests {
		idx, err := ParseIndex(tt.input)
		if err != nil {
			t.Fatalf("ParseIndex(%q) failed: %v", tt.input, err)
		}
		if got := idx.Satisfies(tt.position, tt.total); got != tt.want {
			t.Errorf("ParseIndex(%q).Satisfies(%d, %d) = %v, want %v", tt.input, tt.position, tt.total, got, tt.want)
		}
	}
}

func TestParseArrayIndex(t *testing.T) {
	tests := []struct {
		input string
		want  *ast.ArrayIndex
	}{
		{"[1]", &ast.ArrayIndex{Value: intPtr(1), Separator: ','}},
		{"[2, ]", &ast.ArrayIndex{Value: intPtr(2), Separator: ' '}},
		{"[3,_]", &ast.ArrayIndex{Value: intPtr(3), Separator: '_'}},
		{"[0]", &ast.ArrayIndex{Value: intPtr(0), Separator: ','}},
		{"[*]", &ast.ArrayIndex{Separator: ','}},
		{"[-1,;]", &ast.ArrayIndex{Value: intPtr(-1), Separator: ';'}},
		{"[2,]]", &ast.ArrayIndex{Value: intPtr(2), Separator: ']'}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseArrayIndex(tt.input)
			if err != nil {
				t.Fatalf("ParseArrayIndex(%q) failed: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseArrayIndex(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}

	for _, bad := range []string{"[]", "[2,]", "[+1]", "[1", "[x]"} {
		if _, err := ParseArrayIndex(bad); err == nil {
			t.Errorf("ParseArrayIndex(%q) succeeded, want error", bad)
		}
	}
}

func TestParseNodePath(t *testing.T) {
	tests := []struct {
		input string
		want  ast.NodePath
	}{
		{"@A/B/C", ast.NodePath{
			{Operator: ast.OperatorPathRoot, Name: "A"},
			{Operator: ast.OperatorPathRelative, Name: "B"},
			{Operator: ast.OperatorPathRelative, Name: "C"},
		}},
		{"/A/B", ast.NodePath{
			nil,
			{Operator: ast.OperatorPathRelative, Name: "A"},
			{Operator: ast.OperatorPathRelative, Name: "B"},
		}},
		{"../A/B", ast.NodePath{
			{Operator: ast.OperatorParentNode},
			{Operator: ast.OperatorPathRelative, Name: "A"},
			{Operator: ast.OperatorPathRelative, Name: "B"},
		}},
		{"@PART[x|y]:HAS[#k],0:HAS[#ignored],1/MODULE", ast.NodePath{
			{
				Operator: ast.OperatorPathRoot, Name: "PART", Filters: []string{"x", "y"},
				Has:   &ast.Has{Pieces: []*ast.HasPiece{{Kind: ast.HasProperty, Key: "k"}}},
				Index: &ast.Index{Value: intPtr(0)},
			},
			{Operator: ast.OperatorPathRelative, Name: "MODULE"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNodePath(tt.input)
			if err != nil {
				t.Fatalf("ParseNodePath(%q) failed: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseNodePath(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if s := got.String(); s != tt.input && tt.input != "@PART[x|y]:HAS[#k],0:HAS[#ignored],1/MODULE" {
				t.Errorf("String() = %q, want %q", s, tt.input)
			}
		})
	}

	if _, err := ParseNodePath("/"); err == nil {
		t.Errorf("ParseNodePath(%q) succeeded, want error", "/")
	}
}
