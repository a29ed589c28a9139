package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fstrlit/internal/diag"
	"fstrlit/internal/diagfmt"
	"fstrlit/internal/driver"
	"fstrlit/internal/logging"
	"fstrlit/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.fstr|directory>",
	Short: "Report diagnostics for f-string literal files",
	Long: `Diag parses a file, or all *.fstr files in a directory, and prints the
diagnostics only. It exits with status 1 when any error was reported`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Bool("lines", false, "treat every line as a separate literal")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("no-cache", false, "do not read or write the diagnostics cache")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	st := settingsFrom(cmd)
	log := logging.FromContext(cmd.Context())
	format, err := st.formatFlag(cmd, "pretty", "json", "short")
	if err != nil {
		return err
	}
	opts, err := st.driverOptions(cmd)
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fs    *source.FileSet
		bag   *diag.Bag
		timer *driver.Timer
	)
	if !info.IsDir() {
		result, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("diagnose failed: %w", err)
		}
		fs, bag, timer = result.FileSet, result.Bag, result.Timer
	} else {
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		opts.DiagnosticsOnly = true
		if !noCache && st.cfg.Cache.CacheEnabled() {
			opts.Cache = openCache(st)
		}
		uiFlag, err := cmd.Flags().GetString("ui")
		if err != nil {
			return fmt.Errorf("failed to get ui flag: %w", err)
		}
		mode, err := readUIMode(uiFlag)
		if err != nil {
			return err
		}

		timer = driver.NewTimer(nil)
		idx := timer.Begin(driver.PhaseParse)
		var result *driver.DirResult
		if shouldUseTUI(mode, st.quiet) {
			result, err = runParseDirWithUI(cmd.Context(), "diag "+path, path, opts)
		} else {
			result, err = driver.ParseDir(cmd.Context(), path, opts)
		}
		if err != nil {
			return fmt.Errorf("diagnose failed: %w", err)
		}
		timer.End(idx, fmt.Sprintf("%d files", len(result.Files)))
		fs = result.FileSet
		// без лимита: каждый файл уже ограничен своим max
		bag = diag.NewBag(0)
		for _, r := range result.Files {
			bag.Merge(r.Bag)
		}
		log.Debug("diagnosed directory", logging.FieldFiles, len(result.Files), logging.FieldDiagnostics, bag.Len())
	}

	bag.Sort()
	bag.Dedup()
	hasErrors := bag.HasErrors()
	if st.timings && format == "json" {
		driver.AppendTimingDiagnostic(bag, path, timer.Report())
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "json":
		err = diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  true,
		})
	case "short":
		_, err = fmt.Fprint(os.Stdout, diag.FormatShort(bag.Items(), fs, false))
	default:
		if bag.Len() == 0 && !st.quiet {
			_, err = fmt.Fprintln(os.Stdout, "no diagnostics")
			break
		}
		popts := st.prettyOpts(os.Stdout)
		popts.PathMode = pathMode
		diagfmt.Pretty(os.Stdout, bag, fs, popts)
	}
	if err != nil {
		return err
	}
	if format != "json" {
		printTimings(st, timer)
	}
	if hasErrors {
		return errDiagnostics
	}
	return nil
}

// openCache opens the configured cache dir, or the XDG default. A cache
// that cannot be opened only disables caching.
func openCache(st *runSettings) *driver.DiskCache {
	var (
		cache *driver.DiskCache
		err   error
	)
	if st.cfg.Cache.Dir != "" {
		cache, err = driver.OpenDiskCacheAt(st.cfg.Cache.Dir)
	} else {
		cache, err = driver.OpenDiskCache("fstrlit")
	}
	if err != nil {
		logging.Default().Warn("disk cache disabled", logging.FieldError, err)
		return nil
	}
	logging.Default().Debug("disk cache", logging.FieldCache, cache.Dir())
	return cache
}
