package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fstrlit/internal/ast"
	"fstrlit/internal/diagfmt"
	"fstrlit/internal/driver"
	"fstrlit/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.fstr|directory>",
	Short: "Parse f-string literal files and print their trees",
	Long: `Parse splits every literal of a file, or of all *.fstr files in a directory,
into text and expression regions and prints the resulting trees`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	parseCmd.Flags().Bool("lines", false, "treat every line as a separate literal")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
}

// parsedFile — общий вид результата для файла и для каталога.
type parsedFile struct {
	path     string
	file     *source.File
	literals []driver.Literal
}

func runParse(cmd *cobra.Command, args []string) error {
	st := settingsFrom(cmd)
	format, err := st.formatFlag(cmd, "pretty", "json", "tree")
	if err != nil {
		return err
	}
	opts, err := st.driverOptions(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	// Проверяем, файл это или директория
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fs    *source.FileSet
		files []parsedFile
	)
	if !info.IsDir() {
		result, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, st.prettyOpts(os.Stderr))
		}
		fs = result.FileSet
		files = []parsedFile{{path: path, file: result.File, literals: result.Literals}}
		defer printTimings(st, result.Timer)
	} else {
		uiFlag, err := cmd.Flags().GetString("ui")
		if err != nil {
			return fmt.Errorf("failed to get ui flag: %w", err)
		}
		mode, err := readUIMode(uiFlag)
		if err != nil {
			return err
		}

		var result *driver.DirResult
		if shouldUseTUI(mode, st.quiet) {
			result, err = runParseDirWithUI(cmd.Context(), "parse "+path, path, opts)
		} else {
			result, err = driver.ParseDir(cmd.Context(), path, opts)
		}
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		fs = result.FileSet
		for _, r := range result.Files {
			if r.Bag.Len() > 0 {
				diagfmt.Pretty(os.Stderr, r.Bag, fs, st.prettyOpts(os.Stderr))
			}
			files = append(files, parsedFile{path: r.Path, file: r.File, literals: r.Literals})
		}
	}

	switch format {
	case "json":
		return writeTreesJSON(os.Stdout, files, fs)
	case "tree":
		return writeTrees(os.Stdout, files, fs, st.quiet, diagfmt.FormatTreeArt)
	default:
		return writeTrees(os.Stdout, files, fs, st.quiet, diagfmt.FormatTreePretty)
	}
}

func displayPath(pf parsedFile, fs *source.FileSet) string {
	if pf.file == nil {
		return pf.path
	}
	return pf.file.FormatPath("auto", fs.BaseDir())
}

func writeTrees(w io.Writer, files []parsedFile, fs *source.FileSet, quiet bool,
	render func(io.Writer, *ast.Tree, *source.FileSet) error) error {
	many := len(files) > 1
	for idx, pf := range files {
		if many && !quiet {
			if _, err := fmt.Fprintf(w, "== %s ==\n", displayPath(pf, fs)); err != nil {
				return err
			}
		}
		for _, lit := range pf.literals {
			if err := render(w, lit.Tree, fs); err != nil {
				return err
			}
		}
		if many && !quiet && idx < len(files)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

type fileTreesJSON struct {
	Path     string               `json:"path"`
	Literals []diagfmt.TreeOutput `json:"literals"`
}

func writeTreesJSON(w io.Writer, files []parsedFile, fs *source.FileSet) error {
	out := make([]fileTreesJSON, 0, len(files))
	for _, pf := range files {
		entry := fileTreesJSON{Path: displayPath(pf, fs), Literals: []diagfmt.TreeOutput{}}
		for _, lit := range pf.literals {
			entry.Literals = append(entry.Literals, diagfmt.BuildTreeOutput(lit.Tree, fs, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeFixes:     true,
			}))
		}
		out = append(out, entry)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
