package token

import (
	"fstrlit/internal/source"
)

// Token represents a single scanned token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsPunct reports whether the token is one of the structural marks.
func (t Token) IsPunct() bool {
	return t.Kind >= LParen && t.Kind <= Backslash
}

// IsQuote reports whether the token opens or closes a quoted string.
func (t Token) IsQuote() bool {
	return t.Kind == Quote || t.Kind == DQuote
}
