package ast

import (
	"fstrlit/internal/source"
)

// Hints are initial capacities for the arenas; zero values pick defaults.
type Hints struct{ Nodes, Payloads uint }

// Nodes manages allocation of tree nodes and their payloads.
type Nodes struct {
	Arena  *Arena[Node]
	Exprs  *Arena[ExprData]
	Convs  *Arena[ConvData]
	Lists  *Arena[ListData]
	Groups *Arena[GroupData]
}

// NewNodes creates node storage. Literal bodies are short, so the defaults
// are small.
func NewNodes(hints Hints) *Nodes {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 5
	}
	if hints.Payloads == 0 {
		hints.Payloads = 1 << 3
	}
	return &Nodes{
		Arena:  NewArena[Node](hints.Nodes),
		Exprs:  NewArena[ExprData](hints.Payloads),
		Convs:  NewArena[ConvData](hints.Payloads),
		Lists:  NewArena[ListData](hints.Payloads),
		Groups: NewArena[GroupData](hints.Payloads),
	}
}

func (n *Nodes) new(kind NodeKind, sp source.Span, flags Flags, payload PayloadID) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind:    kind,
		Span:    sp,
		Flags:   flags,
		Payload: payload,
	}))
}

// Get returns the node with the given ID, or nil.
func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

// Len returns the number of allocated nodes.
func (n *Nodes) Len() uint32 {
	return n.Arena.Len()
}

// NewLeaf creates a payload-less node: Text, Run, Backslash or Stray.
func (n *Nodes) NewLeaf(kind NodeKind, sp source.Span, flags Flags) NodeID {
	return n.new(kind, sp, flags, NoPayloadID)
}

// NewList creates a Root, Balanced or FormatSpec node over children.
func (n *Nodes) NewList(kind NodeKind, sp source.Span, flags Flags, children []NodeID) NodeID {
	payload := n.Lists.Allocate(ListData{Children: children})
	return n.new(kind, sp, flags, PayloadID(payload))
}

// NewGroup creates a Group or String node.
func (n *Nodes) NewGroup(kind NodeKind, sp source.Span, flags Flags, open byte, children []NodeID) NodeID {
	payload := n.Groups.Allocate(GroupData{Open: open, Children: children})
	return n.new(kind, sp, flags, PayloadID(payload))
}

// NewExpr creates an expression region.
func (n *Nodes) NewExpr(sp source.Span, flags Flags, body, conv, spec NodeID) NodeID {
	payload := n.Exprs.Allocate(ExprData{Body: body, Conv: conv, Spec: spec})
	return n.new(NodeExpr, sp, flags, PayloadID(payload))
}

// NewEscapedBrace creates the node for a doubled "{" starting at off.
func (n *Nodes) NewEscapedBrace(file source.FileID, off uint32) NodeID {
	return n.NewExpr(source.At(file, off), FlagEscaped, NoNodeID, NoNodeID, NoNodeID)
}

// NewConversion creates a conversion marker; flag is 0 when nothing followed "!".
func (n *Nodes) NewConversion(sp source.Span, flags Flags, flag rune) NodeID {
	payload := n.Convs.Allocate(ConvData{Flag: flag})
	return n.new(NodeConversion, sp, flags, PayloadID(payload))
}

// Expr returns the expression data for the given node ID.
func (n *Nodes) Expr(id NodeID) (*ExprData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeExpr {
		return nil, false
	}
	return n.Exprs.Get(uint32(node.Payload)), true
}

// Conv returns the conversion data for the given node ID.
func (n *Nodes) Conv(id NodeID) (*ConvData, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != NodeConversion {
		return nil, false
	}
	return n.Convs.Get(uint32(node.Payload)), true
}

// Group returns the group data of a Group or String node.
func (n *Nodes) Group(id NodeID) (*GroupData, bool) {
	node := n.Get(id)
	if node == nil || (node.Kind != NodeGroup && node.Kind != NodeString) {
		return nil, false
	}
	return n.Groups.Get(uint32(node.Payload)), true
}

// Children returns the ordered children of id. Expression regions yield
// their present parts in order body, conversion, spec. The slice must not
// be modified.
func (n *Nodes) Children(id NodeID) []NodeID {
	node := n.Get(id)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case NodeRoot, NodeBalanced, NodeFormatSpec:
		if l := n.Lists.Get(uint32(node.Payload)); l != nil {
			return l.Children
		}
	case NodeGroup, NodeString:
		if g := n.Groups.Get(uint32(node.Payload)); g != nil {
			return g.Children
		}
	case NodeExpr:
		e := n.Exprs.Get(uint32(node.Payload))
		if e == nil {
			return nil
		}
		out := make([]NodeID, 0, 3)
		for _, c := range [...]NodeID{e.Body, e.Conv, e.Spec} {
			if c.IsValid() {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}
