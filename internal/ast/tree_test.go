package ast_test

import (
	"testing"

	"fstrlit/internal/ast"
	"fstrlit/internal/source"
)

// buildSample собирает руками дерево для "x{a!r:{w}}}}".
func buildSample(t *testing.T) (*ast.Tree, map[string]ast.NodeID) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("sample.fstr", []byte("x{a!r:{w}}}}"))
	file := fs.Get(fid)
	sp := func(start, end uint32) source.Span { return source.Span{File: fid, Start: start, End: end} }

	n := ast.NewNodes(ast.Hints{})
	ids := map[string]ast.NodeID{}
	ids["text"] = n.NewLeaf(ast.NodeText, sp(0, 1), 0)

	runA := n.NewLeaf(ast.NodeRun, sp(2, 3), 0)
	ids["body"] = n.NewList(ast.NodeBalanced, sp(2, 3), 0, []ast.NodeID{runA})
	ids["conv"] = n.NewConversion(sp(3, 5), 0, 'r')

	runW := n.NewLeaf(ast.NodeRun, sp(7, 8), 0)
	innerBody := n.NewList(ast.NodeBalanced, sp(7, 8), 0, []ast.NodeID{runW})
	ids["inner"] = n.NewExpr(sp(6, 9), 0, innerBody, ast.NoNodeID, ast.NoNodeID)
	ids["spec"] = n.NewList(ast.NodeFormatSpec, sp(5, 9), 0, []ast.NodeID{ids["inner"]})

	ids["expr"] = n.NewExpr(sp(1, 10), 0, ids["body"], ids["conv"], ids["spec"])
	ids["rbrace"] = n.NewLeaf(ast.NodeText, sp(10, 12), ast.FlagEscaped)
	root := n.NewList(ast.NodeRoot, sp(0, 12), 0, []ast.NodeID{ids["text"], ids["expr"], ids["rbrace"]})

	return &ast.Tree{File: file, Nodes: n, Root: root}, ids
}

func TestTree_ChildrenAndWalk(t *testing.T) {
	tree, ids := buildSample(t)

	if got := tree.TopLevel(); len(got) != 3 {
		t.Fatalf("top level: %v", got)
	}
	parts := tree.Children(ids["expr"])
	if len(parts) != 3 || parts[0] != ids["body"] || parts[1] != ids["conv"] || parts[2] != ids["spec"] {
		t.Fatalf("expr children: %v", parts)
	}

	var kinds []ast.NodeKind
	tree.Walk(tree.Root, func(_ ast.NodeID, n *ast.Node) bool {
		kinds = append(kinds, n.Kind)
		return n.Kind != ast.NodeFormatSpec
	})
	want := []ast.NodeKind{
		ast.NodeRoot, ast.NodeText, ast.NodeExpr, ast.NodeBalanced, ast.NodeRun,
		ast.NodeConversion, ast.NodeFormatSpec, ast.NodeText,
	}
	if len(kinds) != len(want) {
		t.Fatalf("walk visited %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("walk[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestTree_ExpressionsAndBody(t *testing.T) {
	tree, ids := buildSample(t)

	exprs := tree.Expressions()
	if len(exprs) != 2 || exprs[0] != ids["expr"] || exprs[1] != ids["inner"] {
		t.Fatalf("expressions: %v", exprs)
	}
	sp, ok := tree.Body(ids["inner"])
	if !ok || tree.File.Slice(sp) == nil || string(tree.File.Slice(sp)) != "w" {
		t.Fatalf("inner body %v ok=%v", sp, ok)
	}
	if _, ok := tree.Body(ids["text"]); ok {
		t.Fatal("text node has no body")
	}
	if conv, ok := tree.Nodes.Conv(ids["conv"]); !ok || conv.Flag != 'r' {
		t.Fatalf("conversion %+v", conv)
	}
}

func TestTree_Render(t *testing.T) {
	tree, _ := buildSample(t)

	if got := tree.Render(nil); got != "x{a!r:{w}}}" {
		t.Fatalf("verbatim render %q", got)
	}
	got := tree.Render(func(id ast.NodeID) string {
		sp, _ := tree.Body(id)
		return "<" + string(tree.File.Slice(sp)) + ">"
	})
	if got != "x<a>}" {
		t.Fatalf("substituted render %q", got)
	}
}

func TestTree_ContextAt(t *testing.T) {
	tree, ids := buildSample(t)

	tests := []struct {
		off  uint32
		kind ast.ContextKind
		expr ast.NodeID
	}{
		{0, ast.CtxOutside, ast.NoNodeID},
		{1, ast.CtxOutside, ast.NoNodeID},
		{2, ast.CtxExprBody, ids["expr"]},
		{3, ast.CtxExprBody, ids["expr"]},
		{4, ast.CtxConversion, ids["expr"]},
		{5, ast.CtxConversion, ids["expr"]},
		{6, ast.CtxFormatSpec, ids["expr"]},
		{7, ast.CtxExprBody, ids["inner"]},
		{8, ast.CtxExprBody, ids["inner"]},
		{9, ast.CtxFormatSpec, ids["expr"]},
		{10, ast.CtxOutside, ast.NoNodeID},
		{12, ast.CtxOutside, ast.NoNodeID},
	}
	for _, tt := range tests {
		got := tree.ContextAt(tt.off)
		if got.Kind != tt.kind || got.Expr != tt.expr {
			t.Errorf("ContextAt(%d) = %s/%d, want %s/%d", tt.off, got.Kind, got.Expr, tt.kind, tt.expr)
		}
	}
}

func TestTree_ContextAtUnclosed(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("open.fstr", []byte("{ab"))
	n := ast.NewNodes(ast.Hints{})
	run := n.NewLeaf(ast.NodeRun, source.Span{File: fid, Start: 1, End: 3}, 0)
	body := n.NewList(ast.NodeBalanced, source.Span{File: fid, Start: 1, End: 3}, 0, []ast.NodeID{run})
	expr := n.NewExpr(source.Span{File: fid, Start: 0, End: 3}, ast.FlagUnclosed, body, ast.NoNodeID, ast.NoNodeID)
	root := n.NewList(ast.NodeRoot, source.Span{File: fid, Start: 0, End: 3}, 0, []ast.NodeID{expr})
	tree := &ast.Tree{File: fs.Get(fid), Nodes: n, Root: root}

	// каретка в самом конце незакрытого выражения всё ещё внутри
	if got := tree.ContextAt(3); got.Kind != ast.CtxExprBody || got.Expr != expr {
		t.Fatalf("ContextAt(3) = %+v", got)
	}
}

func TestFlagsString(t *testing.T) {
	if s := (ast.FlagEscaped | ast.FlagInvalid).String(); s != "escaped|invalid" {
		t.Fatalf("flags %q", s)
	}
	if s := ast.Flags(0).String(); s != "" {
		t.Fatalf("zero flags %q", s)
	}
}

func TestArena(t *testing.T) {
	a := ast.NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("allocate returned %d", id)
	}
}
