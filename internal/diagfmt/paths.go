package diagfmt

import (
	"fmt"

	"fstrlit/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// formatSpan renders a span as "line:col-line:col" when fs knows the file,
// or as raw byte offsets otherwise.
func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || fs.Get(sp.File) == nil {
		return fmt.Sprintf("span(%d-%d)", sp.Start, sp.End)
	}
	start, end := fs.Resolve(sp)
	return fmtLineCol(start) + "-" + fmtLineCol(end)
}

func fmtLineCol(lc source.LineCol) string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
