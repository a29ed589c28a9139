package token

// Kind represents the category of a scanned token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the literal body.
	EOF

	// Text is a maximal run of non-structural, non-whitespace bytes.
	Text

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Bang      // !
	Colon     // :
	Quote     // '
	DQuote    // "
	Backslash // \
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Text:      "Text",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Bang:      "Bang",
	Colon:     "Colon",
	Quote:     "Quote",
	DQuote:    "DQuote",
	Backslash: "Backslash",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// KindOf maps a structural byte to its token kind.
// Returns Text for any other byte; whitespace is not handled here.
func KindOf(b byte) Kind {
	switch b {
	case '(':
		return LParen
	case ')':
		return RParen
	case '{':
		return LBrace
	case '}':
		return RBrace
	case '[':
		return LBracket
	case ']':
		return RBracket
	case '!':
		return Bang
	case ':':
		return Colon
	case '\'':
		return Quote
	case '"':
		return DQuote
	case '\\':
		return Backslash
	default:
		return Text
	}
}

// IsStructural reports whether b is one of the punctuation marks that the
// scanner emits as its own token.
func IsStructural(b byte) bool {
	return KindOf(b) != Text
}

// IsSpace reports whether b is insignificant whitespace between tokens.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Closer returns the closing kind for an opening delimiter, or Invalid.
func Closer(open Kind) Kind {
	switch open {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace:
		return RBrace
	default:
		return Invalid
	}
}

// IsOpener reports whether k opens a bracketed group.
func IsOpener(k Kind) bool {
	return k == LParen || k == LBracket || k == LBrace
}

// IsCloser reports whether k closes a bracketed group.
func IsCloser(k Kind) bool {
	return k == RParen || k == RBracket || k == RBrace
}
