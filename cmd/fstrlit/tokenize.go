package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fstrlit/internal/diagfmt"
	"fstrlit/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.fstr",
	Short: "Tokenize an f-string literal file",
	Long:  `Tokenize prints the structural tokens and text runs of every literal in a file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("lines", false, "treat every line as a separate literal")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	st := settingsFrom(cmd)
	format, err := st.formatFlag(cmd, "pretty", "json")
	if err != nil {
		return err
	}
	opts, err := st.driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим токены в выбранном формате
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	printTimings(st, result.Timer)
	return nil
}
