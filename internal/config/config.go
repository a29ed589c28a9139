// Package config loads fstrlit project settings from fstrlit.toml or
// .fstrlit.yaml, searching upward from the working directory.
package config

import (
	"fmt"
	"strings"
)

// Parse modes.
const (
	ModeFile  = "file"
	ModeLines = "lines"
)

// Normalisation forms applied on load.
const (
	NormalizeNone = "none"
	NormalizeNFC  = "nfc"
)

// Colour choices.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Output formats.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatTree   = "tree"
)

// DefaultMaxDepth mirrors the parser default.
const DefaultMaxDepth = 256

// Config is the merged project configuration.
type Config struct {
	Parse  ParseConfig  `toml:"parse" yaml:"parse"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Jobs   int          `toml:"jobs" yaml:"jobs"`
}

type ParseConfig struct {
	MaxDepth       int    `toml:"max_depth" yaml:"max_depth"`
	MaxDiagnostics int    `toml:"max_diagnostics" yaml:"max_diagnostics"`
	Mode           string `toml:"mode" yaml:"mode"`
	Normalize      string `toml:"normalize" yaml:"normalize"`
}

type OutputConfig struct {
	Color   string `toml:"color" yaml:"color"`
	Format  string `toml:"format" yaml:"format"`
	Context int    `toml:"context" yaml:"context"`
}

type CacheConfig struct {
	Enabled *bool  `toml:"enabled" yaml:"enabled"`
	Dir     string `toml:"dir" yaml:"dir"`
}

// CacheEnabled reports whether the disk cache is on; it is unless a file
// turns it off explicitly.
func (c CacheConfig) CacheEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Default returns the configuration used when no file is found.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет нулевые поля значениями по умолчанию.
func (c *Config) applyDefaults() {
	if c.Parse.MaxDepth == 0 {
		c.Parse.MaxDepth = DefaultMaxDepth
	}
	if c.Parse.Mode == "" {
		c.Parse.Mode = ModeFile
	}
	if c.Parse.Normalize == "" {
		c.Parse.Normalize = NormalizeNone
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatPretty
	}
}

// Validate rejects negative limits and unknown enum values.
func (c *Config) Validate() error {
	var problems []string
	if c.Parse.MaxDepth < 0 {
		problems = append(problems, fmt.Sprintf("parse.max_depth must be >= 0, got %d", c.Parse.MaxDepth))
	}
	if c.Parse.MaxDiagnostics < 0 {
		problems = append(problems, fmt.Sprintf("parse.max_diagnostics must be >= 0, got %d", c.Parse.MaxDiagnostics))
	}
	if !oneOf(c.Parse.Mode, ModeFile, ModeLines) {
		problems = append(problems, fmt.Sprintf("parse.mode must be %q or %q, got %q", ModeFile, ModeLines, c.Parse.Mode))
	}
	if !oneOf(c.Parse.Normalize, NormalizeNone, NormalizeNFC) {
		problems = append(problems, fmt.Sprintf("parse.normalize must be %q or %q, got %q", NormalizeNone, NormalizeNFC, c.Parse.Normalize))
	}
	if !oneOf(c.Output.Color, ColorAuto, ColorOn, ColorOff) {
		problems = append(problems, fmt.Sprintf("output.color must be auto, on or off, got %q", c.Output.Color))
	}
	if !oneOf(c.Output.Format, FormatPretty, FormatJSON, FormatTree) {
		problems = append(problems, fmt.Sprintf("output.format must be pretty, json or tree, got %q", c.Output.Format))
	}
	if c.Output.Context < 0 || c.Output.Context > 127 {
		problems = append(problems, fmt.Sprintf("output.context must be in [0, 127], got %d", c.Output.Context))
	}
	if c.Jobs < 0 {
		problems = append(problems, fmt.Sprintf("jobs must be >= 0, got %d", c.Jobs))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
