package testkit

import (
	"fmt"

	"fstrlit/internal/ast"
	"fstrlit/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed literal:
// 1) the root span lies within the file content
// 2) every child span is well-formed and contained in its parent span
// 3) siblings appear in source order and never overlap
// 4) constructs start at their opening character
// 5) every diagnostic span lies within the root span
func CheckSpanInvariants(tree *ast.Tree) error {
	if tree == nil || tree.File == nil || tree.Nodes == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Nodes.Get(tree.Root)
	if root == nil || root.Kind != ast.NodeRoot {
		return fmt.Errorf("root node not found")
	}
	if root.Span.File != tree.File.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.Span.File, tree.File.ID)
	}
	if root.Span.Start > root.Span.End || root.Span.End > tree.File.Size() {
		return fmt.Errorf("root span %v outside content of %d bytes", root.Span, tree.File.Size())
	}
	if err := checkNode(tree, tree.Root, root.Span); err != nil {
		return err
	}
	for _, d := range tree.Diagnostics {
		if d.Primary.Start > d.Primary.End || !root.Span.Contains(d.Primary) {
			return fmt.Errorf("diagnostic %q span %v outside literal %v", d.Message, d.Primary, root.Span)
		}
	}
	return nil
}

func checkNode(tree *ast.Tree, id ast.NodeID, parent source.Span) error {
	n := tree.Nodes.Get(id)
	if n == nil {
		return fmt.Errorf("nil node for id=%d", id)
	}
	sp := n.Span
	if sp.Start > sp.End {
		return fmt.Errorf("%s node %d has inverted span %v", n.Kind, id, sp)
	}
	if !parent.Contains(sp) {
		return fmt.Errorf("%s node %d span %v is outside parent span %v", n.Kind, id, sp, parent)
	}
	if err := checkOpener(tree, n); err != nil {
		return err
	}

	prevEnd := sp.Start
	for _, c := range tree.Nodes.Children(id) {
		cn := tree.Nodes.Get(c)
		if cn == nil {
			return fmt.Errorf("nil child %d of %s node %d", c, n.Kind, id)
		}
		if cn.Span.Start < prevEnd {
			return fmt.Errorf("%s node %d overlaps previous sibling (starts at %d, previous ended at %d)",
				cn.Kind, c, cn.Span.Start, prevEnd)
		}
		prevEnd = cn.Span.End
		if err := checkNode(tree, c, sp); err != nil {
			return err
		}
	}
	return nil
}

func checkOpener(tree *ast.Tree, n *ast.Node) error {
	var want byte
	switch n.Kind {
	case ast.NodeExpr:
		want = '{'
	case ast.NodeConversion:
		want = '!'
	case ast.NodeFormatSpec:
		want = ':'
	case ast.NodeGroup, ast.NodeString:
		want = tree.File.Content[n.Span.Start]
		if want != '(' && want != '[' && want != '{' && want != '\'' && want != '"' {
			return fmt.Errorf("%s node starts with %q", n.Kind, want)
		}
		return nil
	default:
		return nil
	}
	if got := tree.File.Content[n.Span.Start]; got != want {
		return fmt.Errorf("%s node at %d starts with %q, want %q", n.Kind, n.Span.Start, got, want)
	}
	return nil
}

// EqualTrees reports the first structural difference between two trees:
// node kinds, spans, flags, payloads and diagnostics.
func EqualTrees(a, b *ast.Tree) error {
	if err := equalNodes(a, b, a.Root, b.Root); err != nil {
		return err
	}
	if len(a.Diagnostics) != len(b.Diagnostics) {
		return fmt.Errorf("diagnostic count %d != %d", len(a.Diagnostics), len(b.Diagnostics))
	}
	for i := range a.Diagnostics {
		da, db := a.Diagnostics[i], b.Diagnostics[i]
		if da.Code != db.Code || da.Primary != db.Primary || da.Message != db.Message {
			return fmt.Errorf("diagnostic %d differs: %v %q vs %v %q", i, da.Primary, da.Message, db.Primary, db.Message)
		}
	}
	return nil
}

func equalNodes(a, b *ast.Tree, ida, idb ast.NodeID) error {
	na, nb := a.Nodes.Get(ida), b.Nodes.Get(idb)
	if na == nil || nb == nil {
		return fmt.Errorf("missing node %d/%d", ida, idb)
	}
	if na.Kind != nb.Kind || na.Span.Start != nb.Span.Start || na.Span.End != nb.Span.End || na.Flags != nb.Flags {
		return fmt.Errorf("node differs: %s %v %s vs %s %v %s", na.Kind, na.Span, na.Flags, nb.Kind, nb.Span, nb.Flags)
	}
	if ca, ok := a.Nodes.Conv(ida); ok {
		cb, _ := b.Nodes.Conv(idb)
		if ca.Flag != cb.Flag {
			return fmt.Errorf("conversion flag %q vs %q", ca.Flag, cb.Flag)
		}
	}
	if ga, ok := a.Nodes.Group(ida); ok {
		gb, _ := b.Nodes.Group(idb)
		if ga.Open != gb.Open {
			return fmt.Errorf("group opener %q vs %q", ga.Open, gb.Open)
		}
	}
	ka, kb := a.Nodes.Children(ida), b.Nodes.Children(idb)
	if len(ka) != len(kb) {
		return fmt.Errorf("%s node at %v: %d children vs %d", na.Kind, na.Span, len(ka), len(kb))
	}
	for i := range ka {
		if err := equalNodes(a, b, ka[i], kb[i]); err != nil {
			return err
		}
	}
	return nil
}
