package ast

// ContextKind classifies a caret position for completion.
type ContextKind uint8

const (
	// CtxOutside — вне любых выражений, обычный текст литерала.
	CtxOutside ContextKind = iota
	// CtxExprBody — внутри исходника выражения.
	CtxExprBody
	// CtxConversion — после "!".
	CtxConversion
	// CtxFormatSpec — после ":" в формат-спецификаторе.
	CtxFormatSpec
)

func (k ContextKind) String() string {
	switch k {
	case CtxExprBody:
		return "expr"
	case CtxConversion:
		return "conversion"
	case CtxFormatSpec:
		return "format-spec"
	default:
		return "outside"
	}
}

// Context describes where a caret sits. Expr is the innermost enclosing
// expression region, NoNodeID when outside.
type Context struct {
	Kind ContextKind
	Expr NodeID
}

// ContextAt returns the completion context for a caret placed before the
// byte at off. A caret is inside a region from just after its "{" up to and
// including the position of its "}"; an unclosed region extends to its
// clamped end.
func (t *Tree) ContextAt(off uint32) Context {
	ctx := Context{Kind: CtxOutside}
	for _, id := range t.TopLevel() {
		if t.contextIn(id, off, &ctx) {
			break
		}
	}
	return ctx
}

func (t *Tree) contextIn(id NodeID, off uint32, ctx *Context) bool {
	n := t.Nodes.Get(id)
	if n == nil || n.Kind != NodeExpr || n.Flags.Has(FlagEscaped) {
		return false
	}
	last := n.Span.End
	if !n.Flags.Has(FlagUnclosed) && last > n.Span.Start {
		last-- // позиция самой '}'
	}
	if off <= n.Span.Start || off > last {
		return false
	}

	ctx.Expr = id
	ctx.Kind = CtxExprBody
	data, _ := t.Nodes.Expr(id)
	if data.Spec.IsValid() {
		spec := t.Nodes.Get(data.Spec)
		if off > spec.Span.Start {
			ctx.Kind = CtxFormatSpec
			for _, c := range t.Nodes.Children(data.Spec) {
				if t.contextIn(c, off, ctx) {
					return true
				}
			}
			return true
		}
	}
	if data.Conv.IsValid() {
		conv := t.Nodes.Get(data.Conv)
		if off > conv.Span.Start {
			ctx.Kind = CtxConversion
		}
	}
	return true
}
