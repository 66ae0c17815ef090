package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"kspmm/mmcfg/pkg/check"
	"kspmm/mmcfg/pkg/mmcfg/ast"
	mmerrors "kspmm/mmcfg/pkg/mmcfg/errors"
	"kspmm/mmcfg/pkg/mmcfg/lint"
)

var (
	brokenSource = "PART\n{\n\tMODULE:NEEDS[X\n\t{\n\t}\n}\n"
	probeSource  = "@PART[probe*]:FIRST:FINAL\n{\n}\n"
)

func passWarning() lint.Warning {
	return lint.Warning{
		Rule:     lint.RuleMultiplePasses,
		Message:  `node "PART" sets more than one pass: :FIRST :FINAL`,
		Location: ast.Location{File: "probe.cfg", Line: 1, Column: 1},
	}
}

// sampleReport has one syntax error, one I/O error, one file with a
// warning and one clean file.
func sampleReport(strict bool) *check.Report {
	probe := &check.FileResult{Path: "probe.cfg", Warnings: []lint.Warning{passWarning()}}
	if strict {
		probe.Err = &lint.StrictError{Warnings: probe.Warnings}
	}

	return &check.Report{
		Strict: strict,
		Files: []*check.FileResult{
			{
				Path: "broken.cfg",
				Err: &mmerrors.SyntaxError{
					Location: ast.Location{File: "broken.cfg", Line: 3, Column: 15},
					Message:  `unexpected "\n", expected "]"`,
				},
			},
			{Path: "gone.cfg", Err: errors.New("failed to access file: no such file")},
			{Path: "good.cfg", Document: &ast.Document{Path: "good.cfg"}},
			probe,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, got, err)
		}
	}

	_, err := ParseFormat("xml")
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("ParseFormat(xml) error = %v, want *ConfigError", err)
	}
	if configErr.Field != "format" {
		t.Errorf("Field = %q, want format", configErr.Field)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
		env    map[string]string
		want   OutputFormat
	}{
		{"auto outside actions", FormatAuto, nil, FormatText},
		{"auto in actions", FormatAuto, map[string]string{"GITHUB_ACTIONS": "true", "GITHUB_WORKFLOW": "ci"}, FormatGitHub},
		{"auto needs both variables", FormatAuto, map[string]string{"GITHUB_ACTIONS": "true"}, FormatText},
		{"auto with empty variables", FormatAuto, map[string]string{"GITHUB_ACTIONS": "", "GITHUB_WORKFLOW": ""}, FormatGitHub},
		{"explicit wins", FormatJSON, map[string]string{"GITHUB_ACTIONS": "true", "GITHUB_WORKFLOW": "ci"}, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookupEnv := func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			}
			if got := ResolveFormat(tt.format, lookupEnv); got != tt.want {
				t.Errorf("ResolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "*cli.TextFormatter"},
		{FormatAuto, "*cli.TextFormatter"},
		{FormatGitHub, "*cli.GitHubFormatter"},
		{FormatJSON, "*cli.JSONFormatter"},
		{FormatPretty, "*cli.PrettyFormatter"},
	}
	for _, tt := range tests {
		got := typeName(NewFormatter(tt.format))
		if got != tt.want {
			t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TextFormatter:
		return "*cli.TextFormatter"
	case *GitHubFormatter:
		return "*cli.GitHubFormatter"
	case *JSONFormatter:
		return "*cli.JSONFormatter"
	case *PrettyFormatter:
		return "*cli.PrettyFormatter"
	}
	return "unknown"
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		want   string
	}{
		{
			name: "default",
			want: `broken.cfg:3:15: unexpected "\n", expected "]"` + "\n" +
				"gone.cfg: failed to access file: no such file\n" +
				`probe.cfg:1:1: warning: node "PART" sets more than one pass: :FIRST :FINAL [multiple-passes]` + "\n",
		},
		{
			name:   "strict",
			strict: true,
			want: `broken.cfg:3:15: unexpected "\n", expected "]"` + "\n" +
				"gone.cfg: failed to access file: no such file\n" +
				`probe.cfg:1:1: node "PART" sets more than one pass: :FIRST :FINAL [multiple-passes]` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&TextFormatter{}).FormatReport(&buf, sampleReport(tt.strict)); err != nil {
				t.Fatalf("FormatReport() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatReport() =\n%s\nwant\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestGitHubFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&GitHubFormatter{}).FormatReport(&buf, sampleReport(false)); err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	want := `::error file=broken.cfg,line=3,col=15::unexpected "\n", expected "]"` + "\n" +
		"::error file=gone.cfg::failed to access file: no such file\n" +
		`::warning file=probe.cfg,line=1,col=1::node "PART" sets more than one pass: :FIRST :FINAL [multiple-passes]` + "\n"
	if buf.String() != want {
		t.Errorf("FormatReport() =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := (&GitHubFormatter{}).FormatReport(&buf, sampleReport(true)); err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}
	if !strings.Contains(buf.String(), "::error file=probe.cfg,line=1,col=1::") {
		t.Errorf("strict output missing error for probe.cfg:\n%s", buf.String())
	}
}

func TestGitHubFormatter_EscapesCommand(t *testing.T) {
	report := &check.Report{
		Files: []*check.FileResult{
			{
				Path: "Game:Data/a,b.cfg",
				Err: &mmerrors.SyntaxError{
					Location: ast.Location{File: "Game:Data/a,b.cfg", Line: 2, Column: 4},
					Message:  "value 100% of\nlimit",
				},
			},
			{Path: "C:/mods/100%.cfg", Err: errors.New("read failed:\r\ndisk")},
		},
	}

	var buf bytes.Buffer
	if err := (&GitHubFormatter{}).FormatReport(&buf, report); err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	want := "::error file=Game%3AData/a%2Cb.cfg,line=2,col=4::value 100%25 of%0Alimit\n" +
		"::error file=C%3A/mods/100%25.cfg::read failed:%0D%0Adisk\n"
	if buf.String() != want {
		t.Errorf("FormatReport() =\n%s\nwant\n%s", buf.String(), want)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("want one line per annotation, got:\n%s", buf.String())
	}
}

func TestGitHubEscaping(t *testing.T) {
	if got, want := escapeData("50% done\r\nnext"), "50%25 done%0D%0Anext"; got != want {
		t.Errorf("escapeData() = %q, want %q", got, want)
	}
	if got, want := escapeProperty("C:\\a,b.cfg"), "C%3A\\a%2Cb.cfg"; got != want {
		t.Errorf("escapeProperty() = %q, want %q", got, want)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).FormatReport(&buf, sampleReport(true)); err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}

	var got struct {
		Files []struct {
			Path  string `json:"path"`
			OK    bool   `json:"ok"`
			Error *struct {
				Line    int    `json:"line"`
				Column  int    `json:"column"`
				Message string `json:"message"`
			} `json:"error"`
			Warnings []struct {
				Rule string `json:"rule"`
				Line int    `json:"line"`
			} `json:"warnings"`
		} `json:"files"`
		Strict  bool          `json:"strict"`
		Summary check.Summary `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if !got.Strict {
		t.Error("strict = false, want true")
	}
	if want := (check.Summary{Files: 4, Failures: 3, Warnings: 1}); got.Summary != want {
		t.Errorf("summary = %+v, want %+v", got.Summary, want)
	}
	if len(got.Files) != 4 {
		t.Fatalf("len(files) = %d, want 4", len(got.Files))
	}

	broken := got.Files[0]
	if broken.OK || broken.Error == nil || broken.Error.Line != 3 || broken.Error.Column != 15 {
		t.Errorf("broken.cfg = %+v", broken)
	}
	if gone := got.Files[1]; gone.Error == nil || gone.Error.Line != 0 || !strings.Contains(gone.Error.Message, "no such file") {
		t.Errorf("gone.cfg = %+v", gone)
	}
	if good := got.Files[2]; !good.OK || good.Error != nil {
		t.Errorf("good.cfg = %+v", good)
	}
	probe := got.Files[3]
	if probe.OK || len(probe.Warnings) != 1 || probe.Warnings[0].Rule != lint.RuleMultiplePasses {
		t.Errorf("probe.cfg = %+v", probe)
	}
}

func TestPrettyFormatter(t *testing.T) {
	sources := map[string]string{
		"broken.cfg": brokenSource,
		"probe.cfg":  probeSource,
	}
	f := &PrettyFormatter{
		ReadFile: func(path string) ([]byte, error) {
			src, ok := sources[path]
			if !ok {
				return nil, errors.New("not found")
			}
			return []byte(src), nil
		},
	}

	var buf bytes.Buffer
	if err := f.FormatReport(&buf, sampleReport(false)); err != nil {
		t.Fatalf("FormatReport() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Error: Syntax error",
		"on broken.cfg line 3",
		"MODULE:NEEDS[X",
		"Error: Cannot read file",
		"Warning: Lint: multiple-passes",
		"on probe.cfg line 1",
		"@PART[probe*]:FIRST:FINAL",
		"4 files checked, 2 files failed, 1 warning\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSourceRange(t *testing.T) {
	src := []byte("A\n{\n\tkey = välue\n}\n")

	r := sourceRange(src, "x.cfg", 3, 9)
	if got := string(src[r.Start.Byte:r.End.Byte]); got != "ä" {
		t.Errorf("range text = %q, want %q", got, "ä")
	}
	if r.Start.Line != 3 || r.Start.Column != 9 {
		t.Errorf("Start = %+v, want line 3 column 9", r.Start)
	}

	r = sourceRange(src, "x.cfg", 9, 1)
	if r.Start.Byte != len(src) || r.End.Byte != len(src) {
		t.Errorf("out of range = %+v, want end of source", r)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "file"); got != "1 file" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(0, "warning"); got != "0 warnings" {
		t.Errorf("plural(0) = %q", got)
	}
}

func TestSourceRange_LineEnd(t *testing.T) {
	src := []byte("\tMODULE:NEEDS[X\n")

	r := sourceRange(src, "x.cfg", 1, 16)
	if got := string(src[r.Start.Byte:r.End.Byte]); got != "X" {
		t.Errorf("range text = %q, want %q", got, "X")
	}
}

func TestSourceRange_LineEndColumns(t *testing.T) {
	src := []byte("\tMODULE:NEEDS[X\n")

	r := sourceRange(src, "x.cfg", 1, 40)
	if r.Start.Byte != 14 || r.End.Byte != 15 {
		t.Errorf("bytes = %d..%d, want 14..15", r.Start.Byte, r.End.Byte)
	}
	if r.Start.Column != 15 || r.End.Column != 16 {
		t.Errorf("columns = %d..%d, want 15..16", r.Start.Column, r.End.Column)
	}
}

func TestSourceRange_CarriageReturns(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		line, col int
		want      string
		wantStart int
	}{
		{"lone CR", "A\r{\r\tk = v\r}\r", 3, 2, "k", 5},
		{"lone CR at line end", "A\r{\r\tk = v\r}\r", 3, 7, "v", 9},
		{"CRLF", "A\r\n{\r\n\tk = v\r\n}\r\n", 3, 6, "v", 11},
		{"CRLF at line end", "A\r\n{\r\n\tk = v\r\n}\r\n", 2, 2, "{", 3},
		{"mixed", "A\n{\r\tk = v\r\n}", 4, 1, "}", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(tt.src)
			r := sourceRange(src, "x.cfg", tt.line, tt.col)
			if got := string(src[r.Start.Byte:r.End.Byte]); got != tt.want {
				t.Errorf("range text = %q, want %q", got, tt.want)
			}
			if r.Start.Byte != tt.wantStart {
				t.Errorf("Start.Byte = %d, want %d", r.Start.Byte, tt.wantStart)
			}
			if r.Start.Line != tt.line || r.End.Line != tt.line {
				t.Errorf("lines = %d..%d, want %d", r.Start.Line, r.End.Line, tt.line)
			}
		})
	}
}
