package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fstrlit/internal/config"
	"fstrlit/internal/diagfmt"
	"fstrlit/internal/driver"
	"fstrlit/internal/logging"
	"fstrlit/internal/source"
)

type settingsKey struct{}

// runSettings — итоговые настройки команды: конфиг, поверх него флаги.
type runSettings struct {
	cfg        config.Config
	configPath string
	color      string
	quiet      bool
	timings    bool
}

// setupRun loads the config and logger and stores both on the command
// context for every subcommand.
func setupRun(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	level, err := flags.GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if !logging.ValidLevel(level) {
		return fmt.Errorf("invalid --log-level %q (expected debug|info|warn|error)", level)
	}
	logger := logging.New(level)
	logging.SetDefault(logger)

	st := runSettings{}
	explicit, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		st.cfg, err = config.Load(explicit)
		st.configPath = explicit
	} else {
		st.cfg, st.configPath, err = config.LoadOrDefault(".")
	}
	if err != nil {
		return err
	}
	if st.configPath != "" {
		logger.Debug("loaded config", logging.FieldConfig, st.configPath)
	}

	// флаги перекрывают конфиг только если заданы явно
	st.color = st.cfg.Output.Color
	if flags.Changed("color") {
		if st.color, err = flags.GetString("color"); err != nil {
			return err
		}
	}
	switch st.color {
	case config.ColorAuto, config.ColorOn, config.ColorOff:
	default:
		return fmt.Errorf("invalid --color %q (expected auto|on|off)", st.color)
	}
	if flags.Changed("max-diagnostics") {
		if st.cfg.Parse.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return err
		}
	} else if st.configPath == "" {
		st.cfg.Parse.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	if st.quiet, err = flags.GetBool("quiet"); err != nil {
		return err
	}
	if st.timings, err = flags.GetBool("timings"); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(context.WithValue(ctx, settingsKey{}, &st))
	return nil
}

func settingsFrom(cmd *cobra.Command) *runSettings {
	if st, ok := cmd.Context().Value(settingsKey{}).(*runSettings); ok {
		return st
	}
	return &runSettings{cfg: config.Default(), color: config.ColorAuto}
}

// useColor resolves auto against the stream the output goes to.
func (st *runSettings) useColor(f *os.File) bool {
	switch st.color {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	default:
		return isTerminal(f)
	}
}

func (st *runSettings) prettyOpts(f *os.File) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     st.useColor(f),
		Context:   int8(min(st.cfg.Output.Context, 127)), // #nosec G115 -- validated to [0, 127]
		ShowNotes: true,
		ShowFixes: true,
	}
}

// driverOptions maps the config onto driver options; mode may be forced by
// a command flag.
func (st *runSettings) driverOptions(cmd *cobra.Command) (driver.Options, error) {
	mode, err := driver.ParseMode(st.cfg.Parse.Mode)
	if err != nil {
		return driver.Options{}, err
	}
	if f := cmd.Flags().Lookup("lines"); f != nil && f.Changed {
		if lines, _ := cmd.Flags().GetBool("lines"); lines {
			mode = driver.ModeLines
		} else {
			mode = driver.ModeFile
		}
	}
	jobs := st.cfg.Jobs
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, _ = cmd.Flags().GetInt("jobs")
	}
	norm := source.NormalizeNone
	if st.cfg.Parse.Normalize == config.NormalizeNFC {
		norm = source.NormalizeNFC
	}
	return driver.Options{
		MaxDiagnostics: st.cfg.Parse.MaxDiagnostics,
		MaxDepth:       st.cfg.Parse.MaxDepth,
		Mode:           mode,
		Normalize:      norm,
		Jobs:           jobs,
	}, nil
}

// formatFlag returns --format, falling back to the configured default when
// the command supports it.
func (st *runSettings) formatFlag(cmd *cobra.Command, allowed ...string) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	if !cmd.Flags().Changed("format") {
		for _, a := range allowed {
			if a == st.cfg.Output.Format {
				format = a
				break
			}
		}
	}
	for _, a := range allowed {
		if a == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown format: %s", format)
}
