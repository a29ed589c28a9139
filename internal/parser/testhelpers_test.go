package parser_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"fstrlit/internal/ast"
	"fstrlit/internal/diag"
	"fstrlit/internal/parser"
	"fstrlit/internal/testkit"
)

// parseOK разбирает строку и проверяет инварианты спанов.
func parseOK(t *testing.T, src string, opts parser.Options) parser.Result {
	t.Helper()
	res := parser.ParseString(context.Background(), src, opts)
	if res.Err != nil {
		t.Fatalf("unexpected error for %q: %v", src, res.Err)
	}
	if err := testkit.CheckSpanInvariants(res.Tree); err != nil {
		t.Fatalf("span invariants broken for %q: %v", src, err)
	}
	return res
}

func diagnosticsSummary(diags []diag.Diagnostic) string {
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s @%d-%d", d.Code.ID(), d.Message, d.Primary.Start, d.Primary.End)
	}
	return strings.Join(lines, "; ")
}

type wantDiag struct {
	code       diag.Code
	msg        string
	start, end uint32
}

func checkDiags(t *testing.T, got []diag.Diagnostic, want []wantDiag) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d diagnostics, want %d: %s", len(got), len(want), diagnosticsSummary(got))
	}
	for i, w := range want {
		g := got[i]
		if g.Code != w.code || g.Message != w.msg || g.Primary.Start != w.start || g.Primary.End != w.end {
			t.Errorf("diagnostic %d: got [%s] %q @%d-%d, want [%s] %q @%d-%d",
				i, g.Code.ID(), g.Message, g.Primary.Start, g.Primary.End, w.code.ID(), w.msg, w.start, w.end)
		}
	}
}

// nodeSig — компактное описание узла для сравнения в тестах.
type nodeSig struct {
	kind       ast.NodeKind
	start, end uint32
	flags      ast.Flags
}

func topLevel(tree *ast.Tree) []nodeSig {
	var out []nodeSig
	for _, id := range tree.TopLevel() {
		n := tree.Nodes.Get(id)
		out = append(out, nodeSig{n.Kind, n.Span.Start, n.Span.End, n.Flags})
	}
	return out
}

func checkTop(t *testing.T, tree *ast.Tree, want []nodeSig) {
	t.Helper()
	got := topLevel(tree)
	if len(got) != len(want) {
		t.Fatalf("top level: got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("top[%d]: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

// onlyExpr returns the single top-level expression region.
func onlyExpr(t *testing.T, tree *ast.Tree) (ast.NodeID, *ast.ExprData) {
	t.Helper()
	exprs := tree.Expressions()
	if len(exprs) == 0 {
		t.Fatal("no expression regions")
	}
	data, ok := tree.Nodes.Expr(exprs[0])
	if !ok {
		t.Fatalf("node %d is not an expression", exprs[0])
	}
	return exprs[0], data
}

func bodyText(t *testing.T, tree *ast.Tree, expr ast.NodeID) string {
	t.Helper()
	sp, ok := tree.Body(expr)
	if !ok {
		t.Fatalf("expression %d has no body", expr)
	}
	return string(tree.File.Slice(sp))
}
