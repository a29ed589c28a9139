package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fstrlit/internal/ast"
	"fstrlit/internal/driver"
	"fstrlit/internal/source"
)

var contextCmd = &cobra.Command{
	Use:   "context [flags] file.fstr --offset N",
	Short: "Show the completion context at a byte offset",
	Long: `Context reports whether a caret at the given byte offset sits in literal
text, an expression body, a conversion or a format spec, and which
expression encloses it`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	contextCmd.Flags().Int("offset", -1, "byte offset of the caret (required)")
	contextCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	contextCmd.Flags().Bool("lines", false, "treat every line as a separate literal")
	_ = contextCmd.MarkFlagRequired("offset")
}

type spanJSON struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type contextJSON struct {
	Offset     uint32    `json:"offset"`
	Context    string    `json:"context"`
	Literal    *spanJSON `json:"literal,omitempty"`
	Expression *spanJSON `json:"expression,omitempty"`
	Body       *string   `json:"body,omitempty"`
}

func runContext(cmd *cobra.Command, args []string) error {
	st := settingsFrom(cmd)
	format, err := st.formatFlag(cmd, "pretty", "json")
	if err != nil {
		return err
	}
	offset, err := cmd.Flags().GetInt("offset")
	if err != nil {
		return fmt.Errorf("failed to get offset flag: %w", err)
	}
	opts, err := st.driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if offset < 0 || offset > len(result.File.Content) {
		return fmt.Errorf("offset %d out of range [0, %d]", offset, len(result.File.Content))
	}
	off := uint32(offset) // #nosec G115 -- checked against content length above

	out := describeContext(result, off)
	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}
	return writeContextPretty(os.Stdout, out, result.FileSet, result.File.ID)
}

func describeContext(result *driver.ParseResult, off uint32) contextJSON {
	out := contextJSON{Offset: off, Context: ast.CtxOutside.String()}
	lit, ok := result.LiteralAt(off)
	if !ok {
		return out
	}
	out.Literal = &spanJSON{Start: lit.Span.Start, End: lit.Span.End}

	c := lit.Tree.ContextAt(off)
	out.Context = c.Kind.String()
	if !c.Expr.IsValid() {
		return out
	}
	sp := lit.Tree.Nodes.Get(c.Expr).Span
	out.Expression = &spanJSON{Start: sp.Start, End: sp.End}
	if body, ok := lit.Tree.Body(c.Expr); ok {
		text := string(result.File.Slice(body))
		out.Body = &text
	}
	return out
}

func writeContextPretty(w io.Writer, c contextJSON, fs *source.FileSet, file source.FileID) error {
	pos, _ := fs.Resolve(source.At(file, c.Offset))
	if _, err := fmt.Fprintf(w, "offset %d (%d:%d): %s\n", c.Offset, pos.Line, pos.Col, c.Context); err != nil {
		return err
	}
	if c.Expression != nil {
		start, end := fs.Resolve(source.Span{File: file, Start: c.Expression.Start, End: c.Expression.End})
		if _, err := fmt.Fprintf(w, "expression: %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col); err != nil {
			return err
		}
	}
	if c.Body != nil {
		if _, err := fmt.Fprintf(w, "body: %q\n", *c.Body); err != nil {
			return err
		}
	}
	return nil
}
