package fuzztests

import (
	"testing"

	"fstrlit/internal/lexer"
	"fstrlit/internal/source"
	"fstrlit/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.fstr", input))
		lx := lexer.New(file)

		prevEnd := uint32(0)
		for {
			tok := lx.Next()
			if tok.Kind.IsEOF() {
				break
			}
			// токены идут по порядку, не пустые и не пересекаются
			if tok.Span.Start < prevEnd || tok.Span.Empty() {
				t.Fatalf("bad token span %v after %d", tok.Span, prevEnd)
			}
			if tok.Kind != token.Text && tok.Span.Len() != 1 {
				t.Fatalf("punctuation token %s spans %v", tok.Kind, tok.Span)
			}
			prevEnd = tok.Span.End
		}
	})
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
