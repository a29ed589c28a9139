package diag

import (
	"fmt"
	"sort"
	"strings"

	"fstrlit/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line as
// "<sev> <code> <path>:<line>:<col> <message>", sorted deterministically.
// With a nil FileSet the path is omitted and line/col are 1:<offset+1>.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rendered = append(rendered, resolveShort(fs, d.Primary, severityLabel(d.Severity), d.Code.ID(), d.Message))
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			rendered = append(rendered, resolveShort(fs, note.Span, "note", d.Code.ID(), note.Msg))
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func resolveShort(fs *source.FileSet, span source.Span, sev, code, msg string) shortDiagnostic {
	out := shortDiagnostic{Severity: sev, Code: code, Message: sanitizeMessage(msg), Line: 1, Column: span.Start + 1}
	if fs == nil {
		return out
	}
	if file := fs.Get(span.File); file != nil {
		out.Path = file.FormatPath("relative", fs.BaseDir())
		start, _ := fs.Resolve(span)
		out.Line, out.Column = start.Line, start.Col
	}
	return out
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
