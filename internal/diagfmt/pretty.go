package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fstrlit/internal/diag"
	"fstrlit/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	note, fix       *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.note, p.fix} {
		// цвет решает вызывающий, а не глобальный color.NoColor
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, &d, fs, opts, p)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sevColor := p.severity(d.Severity)
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		p.path.Sprint(formatPath(f, fs, opts.PathMode)), start.Line, start.Col,
		sevColor.Sprint(d.Severity.String()), d.Code.ID(), d.Message)

	if f != nil {
		writeSnippet(w, f, d.Primary, start, end, int(opts.Context), p, sevColor)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s (%d:%d)\n", p.note.Sprint("= note:"), n.Msg, ns.Line, ns.Col)
		}
	}
	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("= fix:"), fx.Title)
			for _, e := range fx.Edits {
				old := ""
				if f != nil {
					old = string(f.Slice(e.Span))
				}
				fmt.Fprintf(w, "      %q -> %q at %s\n", old, e.NewText, formatSpan(e.Span, fs))
			}
		}
	}
}

// writeSnippet печатает строку с ошибкой и ctxLines строк вокруг,
// подчёркивая span. Колонки выравниваются по ширине символов на экране.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, start, end source.LineCol, ctxLines int, p palette, mark *color.Color) {
	ctxLines = max(ctxLines, 0)
	line := int(start.Line)
	first := max(line-ctxLines, 1)
	last := max(min(line+ctxLines, int(f.LineCount())), line)
	gutterWidth := len(strconv.Itoa(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- ln <= LineCount
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != line {
			continue
		}
		lineSpan, ok := f.LineSpan(start.Line)
		if !ok {
			lineSpan = source.At(f.ID, sp.Start)
		}
		from := clampInt(int(sp.Start)-int(lineSpan.Start), 0, len(text))
		to := len(text)
		if end.Line == start.Line {
			to = clampInt(int(sp.End)-int(lineSpan.Start), from, len(text))
		}
		fmt.Fprintf(w, "%s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			caretPad(text[:from]),
			mark.Sprint(underline(text[from:to])))
	}
}

// caretPad повторяет отступ строки: табы остаются табами, остальное —
// пробелы по экранной ширине.
func caretPad(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func underline(s string) string {
	width := max(runewidth.StringWidth(s), 1)
	return "^" + strings.Repeat("~", width-1)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
