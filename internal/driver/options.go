package driver

import (
	"fmt"

	"fstrlit/internal/parser"
	"fstrlit/internal/source"
)

// Mode selects how a file is split into literals.
type Mode string

const (
	// ModeFile treats the whole file as one literal body.
	ModeFile Mode = "file"
	// ModeLines treats every non-empty line as a separate literal.
	ModeLines Mode = "lines"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFile:
		return ModeFile, nil
	case ModeLines:
		return ModeLines, nil
	}
	return "", fmt.Errorf("invalid mode %q (expected file|lines)", s)
}

// Options configures Tokenize, Parse and ParseDir.
type Options struct {
	MaxDiagnostics int
	MaxDepth       int
	Mode           Mode
	Normalize      source.Normalization
	// Jobs — число воркеров ParseDir; 0 — GOMAXPROCS.
	Jobs int
	// Cache, если задан, используется в DiagnosticsOnly-разборах каталога.
	Cache *DiskCache
	// DiagnosticsOnly lets ParseDir skip tree construction for files whose
	// diagnostics are cached. Cached results carry no Literals trees.
	DiagnosticsOnly bool
	Progress        ProgressSink
	OnPhase         PhaseObserver
}

func (o Options) parserOptions() parser.Options {
	return parser.Options{
		MaxDiagnostics: o.MaxDiagnostics,
		MaxDepth:       o.MaxDepth,
	}
}

func (o Options) loadOptions() source.LoadOptions {
	return source.LoadOptions{Normalize: o.Normalize}
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeFile
	}
	return o.Mode
}
