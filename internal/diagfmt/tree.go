package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fstrlit/internal/ast"
	"fstrlit/internal/source"
)

// TreeNodeOutput — узел дерева литерала в JSON.
type TreeNodeOutput struct {
	Kind     string           `json:"kind"`
	Start    uint32           `json:"start"`
	End      uint32           `json:"end"`
	Flags    string           `json:"flags,omitempty"`
	Text     string           `json:"text,omitempty"`
	Conv     string           `json:"conversion,omitempty"`
	Open     string           `json:"open,omitempty"`
	Role     string           `json:"role,omitempty"`
	Children []TreeNodeOutput `json:"children,omitempty"`
}

// TreeOutput is the JSON document for one parsed literal.
type TreeOutput struct {
	File        string           `json:"file"`
	Root        TreeNodeOutput   `json:"root"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// BuildTreeOutput converts a tree into its JSON model.
func BuildTreeOutput(tree *ast.Tree, fs *source.FileSet, opts JSONOpts) TreeOutput {
	out := TreeOutput{
		File:        formatPath(tree.File, fs, opts.PathMode),
		Root:        buildNodeOutput(tree, tree.Root, ""),
		Diagnostics: BuildDiagnosticsOutput(tree.Diagnostics, fs, opts).Diagnostics,
	}
	return out
}

func buildNodeOutput(tree *ast.Tree, id ast.NodeID, role string) TreeNodeOutput {
	n := tree.Nodes.Get(id)
	out := TreeNodeOutput{
		Kind:  n.Kind.String(),
		Start: n.Span.Start,
		End:   n.Span.End,
		Flags: n.Flags.String(),
		Role:  role,
	}
	switch n.Kind {
	case ast.NodeText, ast.NodeRun, ast.NodeString, ast.NodeBackslash, ast.NodeStray:
		out.Text = tree.Text(id)
	case ast.NodeConversion:
		if c, ok := tree.Nodes.Conv(id); ok && c.Flag != 0 {
			out.Conv = string(c.Flag)
		}
	case ast.NodeGroup:
		if g, ok := tree.Nodes.Group(id); ok {
			out.Open = string(g.Open)
		}
	}
	for _, c := range tree.Children(id) {
		out.Children = append(out.Children, buildNodeOutput(tree, c, childRole(tree, id, c)))
	}
	return out
}

// childRole names the part an expression child plays.
func childRole(tree *ast.Tree, parent, child ast.NodeID) string {
	data, ok := tree.Nodes.Expr(parent)
	if !ok {
		return ""
	}
	switch child {
	case data.Body:
		return "body"
	case data.Conv:
		return "conversion"
	case data.Spec:
		return "spec"
	}
	return ""
}

// FormatTreeJSON выводит дерево литерала в JSON.
func FormatTreeJSON(w io.Writer, tree *ast.Tree, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeOutput(tree, fs, opts))
}

// FormatTreePretty печатает дерево отступами с ветками ├─ / └─.
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	if tree == nil || tree.Nodes.Get(tree.Root) == nil {
		return fmt.Errorf("tree not found")
	}
	header := "Literal"
	if tree.File != nil {
		header = formatPath(tree.File, fs, PathModeAuto)
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(tree.Span(), fs)); err != nil {
		return err
	}
	return writeChildrenPretty(w, tree, tree.Root, fs, "")
}

func writeChildrenPretty(w io.Writer, tree *ast.Tree, id ast.NodeID, fs *source.FileSet, prefix string) error {
	children := tree.Children(id)
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, nodeLabel(tree, id, c), formatSpan(tree.Nodes.Get(c).Span, fs)); err != nil {
			return err
		}
		if err := writeChildrenPretty(w, tree, c, fs, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

// nodeLabel — короткое описание узла: роль, вид, флаги и текст листьев.
func nodeLabel(tree *ast.Tree, parent, id ast.NodeID) string {
	n := tree.Nodes.Get(id)
	label := n.Kind.String()
	if role := childRole(tree, parent, id); role != "" {
		label = role + ": " + label
	}
	switch n.Kind {
	case ast.NodeText, ast.NodeRun, ast.NodeString, ast.NodeBackslash, ast.NodeStray:
		label += fmt.Sprintf(" %q", tree.Text(id))
	case ast.NodeConversion:
		if c, ok := tree.Nodes.Conv(id); ok && c.Flag != 0 {
			label += fmt.Sprintf(" %q", c.Flag)
		}
	case ast.NodeGroup:
		if g, ok := tree.Nodes.Group(id); ok {
			label += " " + string(g.Open)
		}
	}
	if f := n.Flags.String(); f != "" {
		label += " [" + f + "]"
	}
	return label
}
