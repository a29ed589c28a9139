package fuzztests

import (
	"context"
	"testing"
	"time"

	"fstrlit/internal/parser"
	"fstrlit/internal/source"
	"fstrlit/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.fstr", input))

		first := parser.ParseFile(context.Background(), file, parser.Options{})
		if err := testkit.CheckSpanInvariants(first.Tree); err != nil {
			t.Fatalf("invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		second := parser.ParseFile(context.Background(), file, parser.Options{})
		if err := testkit.EqualTrees(first.Tree, second.Tree); err != nil {
			t.Fatalf("parse is not deterministic: %v", err)
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("{((((((((((((((((((((((((("))
	f.Add([]byte("{a:{b:{c:{d:{e:"))
	f.Add([]byte(`{"'"'"'"'`))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.fstr", input))
			_ = parser.ParseFile(ctx, file, parser.Options{MaxDiagnostics: 128})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
