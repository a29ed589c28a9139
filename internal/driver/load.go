package driver

import (
	"context"
	"fmt"

	"fstrlit/internal/diag"
	"fstrlit/internal/logging"
	"fstrlit/internal/source"
)

// loadFile reads path into fs. Load failures are returned as errors so the
// single-file commands can bubble them to the CLI.
func loadFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*source.File, error) {
	id, err := fs.LoadWithOptions(path, opts.loadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	file := fs.Get(id)
	logging.FromContext(ctx).Debug("loaded file",
		logging.FieldPath, path,
		logging.FieldBytes, len(file.Content),
		logging.FieldMode, string(opts.mode()))
	return file, nil
}

// literalSpans splits a file into literal bodies according to mode. In
// lines mode blank lines carry no literal.
func literalSpans(file *source.File, mode Mode) []source.Span {
	if mode != ModeLines {
		return []source.Span{{File: file.ID, Start: 0, End: file.Size()}}
	}
	n := file.LineCount()
	out := make([]source.Span, 0, n)
	for ln := uint32(1); ln <= n; ln++ {
		sp, ok := file.LineSpan(ln)
		if !ok || sp.Empty() {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// loadErrorDiagnostic turns a failed load into an IO5001 diagnostic for
// directory runs, where one unreadable file must not stop the rest.
func loadErrorDiagnostic(err error) diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, source.Span{}, err.Error())
}
