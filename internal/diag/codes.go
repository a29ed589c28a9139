package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Интерполяция (f-string) — 4000
	FStrInfo            Code = 4000
	FStrStrayRBrace     Code = 4001
	FStrUnclosedExpr    Code = 4002
	FStrEmptyExpr       Code = 4003
	FStrUnclosedParen   Code = 4004
	FStrUnclosedBracket Code = 4005
	FStrUnclosedBrace   Code = 4006
	FStrUnclosedQuote   Code = 4007
	FStrBackslash       Code = 4008
	FStrConvMissing     Code = 4009
	FStrConvInvalid     Code = 4010
	FStrConvTrailing    Code = 4011
	FStrUnmatchedCloser Code = 4012
	FStrTooDeep         Code = 4013

	// Ошибки I/O
	IOLoadFileError Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	FStrInfo:            "Interpolation information",
	FStrStrayRBrace:     "Stray closing brace",
	FStrUnclosedExpr:    "Unbalanced opening brace",
	FStrEmptyExpr:       "Empty expression",
	FStrUnclosedParen:   "Unbalanced parenthesis",
	FStrUnclosedBracket: "Unbalanced bracket",
	FStrUnclosedBrace:   "Unbalanced brace",
	FStrUnclosedQuote:   "Unbalanced quote",
	FStrBackslash:       "Backslash inside interpolation",
	FStrConvMissing:     "Missing conversion flag",
	FStrConvInvalid:     "Invalid conversion flag",
	FStrConvTrailing:    "Text after conversion flag",
	FStrUnmatchedCloser: "Unmatched closing delimiter",
	FStrTooDeep:         "Nesting too deep",
	IOLoadFileError:     "Failed to load file",
	ObsInfo:             "Observability information",
	ObsTimings:          "Timings",
}

// ID returns the stable textual identifier, e.g. "FSTR4001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("FSTR%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
