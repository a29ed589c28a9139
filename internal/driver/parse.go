package driver

import (
	"context"

	"fstrlit/internal/ast"
	"fstrlit/internal/diag"
	"fstrlit/internal/logging"
	"fstrlit/internal/parser"
	"fstrlit/internal/source"
)

// Literal is one parsed literal body of a file.
type Literal struct {
	Span source.Span
	Tree *ast.Tree
}

type ParseResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Literals []Literal
	// Bag holds the diagnostics of every literal, in literal order.
	Bag   *diag.Bag
	Timer *Timer
}

// Parse loads path and parses each literal in it. Malformed literals yield
// diagnostics, never errors; the error is set only for I/O failures and
// cancellation.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	timer := NewTimer(opts.OnPhase)
	fs := source.NewFileSet()

	idx := timer.Begin(PhaseLoad)
	file, err := loadFile(ctx, fs, path, opts)
	timer.End(idx, "")
	if err != nil {
		return nil, err
	}

	idx = timer.Begin(PhaseParse)
	literals, bag, err := parseLiterals(ctx, file, opts)
	timer.End(idx, "")
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet:  fs,
		File:     file,
		Literals: literals,
		Bag:      bag,
		Timer:    timer,
	}, nil
}

// LiteralAt returns the literal whose body contains off; the end offset
// counts as inside so a caret after the last byte still resolves.
func (r *ParseResult) LiteralAt(off uint32) (Literal, bool) {
	for _, lit := range r.Literals {
		if off >= lit.Span.Start && off <= lit.Span.End {
			return lit, true
		}
	}
	return Literal{}, false
}

func parseLiterals(ctx context.Context, file *source.File, opts Options) ([]Literal, *diag.Bag, error) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	popts := opts.parserOptions()
	popts.Reporter = diag.BagReporter{Bag: bag}

	spans := literalSpans(file, opts.mode())
	literals := make([]Literal, 0, len(spans))
	for _, sp := range spans {
		res := parser.ParseRange(ctx, file, sp.Start, sp.End, popts)
		literals = append(literals, Literal{Span: sp, Tree: res.Tree})
		if res.Err != nil {
			return literals, bag, res.Err
		}
	}
	logging.FromContext(ctx).Debug("parsed file",
		logging.FieldPath, file.Path,
		logging.FieldLiterals, len(literals),
		logging.FieldDiagnostics, bag.Len())
	return literals, bag, nil
}
