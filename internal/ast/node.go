package ast

import (
	"strings"

	"fstrlit/internal/source"
)

// NodeKind tags a node of the literal tree.
type NodeKind uint8

const (
	// NodeRoot owns the top-level text runs and expression regions.
	NodeRoot NodeKind = iota
	// NodeText is literal text emitted verbatim. A doubled "}}" is a text
	// node with FlagEscaped that renders as a single brace.
	NodeText
	// NodeExpr is one "{ ... }" region with optional body, conversion and
	// format spec. A doubled "{{" is an expression node with FlagEscaped and
	// an empty span at the first brace.
	NodeExpr
	// NodeConversion covers "!" and the flag text that follows it.
	NodeConversion
	// NodeFormatSpec covers ":" and its text runs and nested regions.
	NodeFormatSpec
	// NodeBalanced is the raw expression source of a region.
	NodeBalanced
	// NodeGroup is a bracketed sub-region: (), [] or {}.
	NodeGroup
	// NodeString is a quoted sub-region.
	NodeString
	// NodeRun is a run of ordinary tokens inside balanced text or a format spec.
	NodeRun
	// NodeBackslash is a rejected backslash inside an expression region.
	NodeBackslash
	// NodeStray is an unmatched ")" or "]" in the body of a region.
	NodeStray
)

var nodeKindNames = [...]string{
	NodeRoot:       "Root",
	NodeText:       "Text",
	NodeExpr:       "Expr",
	NodeConversion: "Conversion",
	NodeFormatSpec: "FormatSpec",
	NodeBalanced:   "Balanced",
	NodeGroup:      "Group",
	NodeString:     "String",
	NodeRun:        "Run",
	NodeBackslash:  "Backslash",
	NodeStray:      "Stray",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// Flags carry recovery and escape markers.
type Flags uint8

const (
	// FlagEscaped marks a doubled brace.
	FlagEscaped Flags = 1 << iota
	// FlagUnclosed marks a construct whose end was clamped by recovery.
	FlagUnclosed
	// FlagInvalid marks a conversion whose flag is missing or not s/r/a.
	FlagInvalid
)

func (f Flags) Has(x Flags) bool { return f&x != 0 }

func (f Flags) String() string {
	var parts []string
	if f.Has(FlagEscaped) {
		parts = append(parts, "escaped")
	}
	if f.Has(FlagUnclosed) {
		parts = append(parts, "unclosed")
	}
	if f.Has(FlagInvalid) {
		parts = append(parts, "invalid")
	}
	return strings.Join(parts, "|")
}

// Node is one tree entry. Kind-specific data lives in a payload arena.
type Node struct {
	Kind    NodeKind
	Span    source.Span
	Flags   Flags
	Payload PayloadID
}

type (
	// ExprData — части выражения; любой из ID может быть NoNodeID.
	ExprData struct {
		Body NodeID // NodeBalanced
		Conv NodeID // NodeConversion
		Spec NodeID // NodeFormatSpec
	}

	// ConvData holds the conversion character; 0 when missing.
	ConvData struct {
		Flag rune
	}

	// ListData holds ordered children of Root, Balanced and FormatSpec nodes.
	ListData struct {
		Children []NodeID
	}

	// GroupData holds the opening delimiter of a group or quote of a string.
	// Strings have no children: their content is taken verbatim.
	GroupData struct {
		Open     byte
		Children []NodeID
	}
)
