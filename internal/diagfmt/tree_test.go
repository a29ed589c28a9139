package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"fstrlit/internal/lexer"
	"fstrlit/internal/parser"
	"fstrlit/internal/source"
)

func parseFixture(t *testing.T, src string) (*source.FileSet, parser.Result) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.fstr", []byte(src)))
	return fs, parser.ParseFile(context.Background(), file, parser.Options{})
}

func TestFormatTreePretty(t *testing.T) {
	fs, res := parseFixture(t, "v={a!r:>{w}}")
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, res.Tree, fs); err != nil {
		t.Fatal(err)
	}
	want := `t.fstr (span: 1:1-1:13)
├─ Text "v=" (span: 1:1-1:3)
└─ Expr (span: 1:3-1:13)
   ├─ body: Balanced (span: 1:4-1:5)
   │  └─ Run "a" (span: 1:4-1:5)
   ├─ conversion: Conversion 'r' (span: 1:5-1:7)
   └─ spec: FormatSpec (span: 1:7-1:12)
      ├─ Run ">" (span: 1:8-1:9)
      └─ Expr (span: 1:9-1:12)
         └─ body: Balanced (span: 1:10-1:11)
            └─ Run "w" (span: 1:10-1:11)
`
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatTreeJSON(t *testing.T) {
	fs, res := parseFixture(t, "{{ {x(}")
	var buf bytes.Buffer
	if err := FormatTreeJSON(&buf, res.Tree, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var out TreeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Root.Kind != "Root" || len(out.Root.Children) != 3 {
		t.Fatalf("root %+v", out.Root)
	}
	if esc := out.Root.Children[0]; esc.Kind != "Expr" || esc.Flags != "escaped" {
		t.Fatalf("escaped brace %+v", esc)
	}
	expr := out.Root.Children[2]
	if expr.Children[0].Role != "body" {
		t.Fatalf("expr children %+v", expr.Children)
	}
	group := expr.Children[0].Children[1]
	if group.Kind != "Group" || group.Open != "(" || group.Flags != "unclosed" {
		t.Fatalf("group %+v", group)
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].Code != "FSTR4004" {
		t.Fatalf("diagnostics %+v", out.Diagnostics)
	}
}

func TestFormatTreeArt(t *testing.T) {
	fs, res := parseFixture(t, "{a}")
	var buf bytes.Buffer
	if err := FormatTreeArt(&buf, res.Tree, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "t.fstr @0-3") {
		t.Fatalf("root line %q", lines[0])
	}
	if !strings.Contains(buf.String(), `Run "a" @1-2`) {
		t.Fatalf("leaf missing:\n%s", buf.String())
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("tok.fstr", []byte("{a!r}")))
	toks := lexer.New(file).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 5 {
		t.Fatalf("want 5 lines, got %d:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), `Bang       "!"`) {
		t.Fatalf("bang token missing:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil || len(out) != 5 {
		t.Fatalf("json tokens %v %v", out, err)
	}
}
