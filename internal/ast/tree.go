package ast

import (
	"strings"

	"fstrlit/internal/diag"
	"fstrlit/internal/source"
)

// Tree is the result of parsing one literal body. It borrows File.Content:
// every span is an absolute offset into it and the content must not be
// mutated while the tree is in use.
type Tree struct {
	File        *source.File
	Nodes       *Nodes
	Root        NodeID
	Diagnostics []diag.Diagnostic
}

// Span returns the span of the literal body.
func (t *Tree) Span() source.Span {
	if n := t.Nodes.Get(t.Root); n != nil {
		return n.Span
	}
	return source.Span{}
}

// TopLevel returns the text runs and expression regions of the root in order.
func (t *Tree) TopLevel() []NodeID {
	return t.Nodes.Children(t.Root)
}

// Children returns the ordered children of id.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.Nodes.Children(id)
}

// Walk visits id and its descendants in source order. Returning false from
// fn skips the children of that node.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	n := t.Nodes.Get(id)
	if n == nil || !fn(id, n) {
		return
	}
	for _, c := range t.Nodes.Children(id) {
		t.Walk(c, fn)
	}
}

// IsEscaped reports whether id is a doubled brace rather than real syntax.
func (t *Tree) IsEscaped(id NodeID) bool {
	n := t.Nodes.Get(id)
	return n != nil && n.Flags.Has(FlagEscaped)
}

// Expressions returns every real expression region in source order,
// including regions nested inside format specs. Escaped "{{" are skipped.
func (t *Tree) Expressions() []NodeID {
	var out []NodeID
	t.Walk(t.Root, func(id NodeID, n *Node) bool {
		if n.Kind == NodeExpr && !n.Flags.Has(FlagEscaped) {
			out = append(out, id)
		}
		return true
	})
	return out
}

// Body returns the span of the balanced text of an expression region, the
// substring that goes to the expression grammar.
func (t *Tree) Body(expr NodeID) (source.Span, bool) {
	data, ok := t.Nodes.Expr(expr)
	if !ok || !data.Body.IsValid() {
		return source.Span{}, false
	}
	return t.Nodes.Get(data.Body).Span, true
}

// Text returns the exact source text covered by id.
func (t *Tree) Text(id NodeID) string {
	n := t.Nodes.Get(id)
	if n == nil || t.File == nil {
		return ""
	}
	return string(t.File.Slice(n.Span))
}

// Render re-emits the literal: escaped braces collapse to one brace and
// every expression region is replaced by expr(id). A nil expr keeps the
// region text verbatim.
func (t *Tree) Render(expr func(id NodeID) string) string {
	var sb strings.Builder
	for _, id := range t.TopLevel() {
		n := t.Nodes.Get(id)
		switch {
		case n.Kind == NodeExpr && n.Flags.Has(FlagEscaped):
			sb.WriteByte('{')
		case n.Kind == NodeText && n.Flags.Has(FlagEscaped):
			sb.WriteByte('}')
		case n.Kind == NodeExpr && expr != nil:
			sb.WriteString(expr(id))
		default:
			sb.WriteString(t.Text(id))
		}
	}
	return sb.String()
}

// HasErrors reports whether the parse produced any error diagnostic.
func (t *Tree) HasErrors() bool {
	for i := range t.Diagnostics {
		if t.Diagnostics[i].Severity >= diag.SevError {
			return true
		}
	}
	return false
}
