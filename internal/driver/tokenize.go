package driver

import (
	"context"

	"fstrlit/internal/lexer"
	"fstrlit/internal/source"
	"fstrlit/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens of every literal in source order, without EOF.
	Tokens []token.Token
	Timer  *Timer
}

// Tokenize loads path and scans every literal in it.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	timer := NewTimer(opts.OnPhase)
	fs := source.NewFileSet()

	idx := timer.Begin(PhaseLoad)
	file, err := loadFile(ctx, fs, path, opts)
	timer.End(idx, "")
	if err != nil {
		return nil, err
	}

	idx = timer.Begin(PhaseLex)
	spans := literalSpans(file, opts.mode())
	var tokens []token.Token
	for _, sp := range spans {
		tokens = append(tokens, lexer.NewRange(file, sp.Start, sp.End).All()...)
	}
	timer.End(idx, "")

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Timer:   timer,
	}, nil
}
