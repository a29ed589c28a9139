package driver

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fstrlit/internal/diag"
	"fstrlit/internal/source"
)

// Phase names used by the driver.
const (
	PhaseLoad   = "load"
	PhaseLex    = "lex"
	PhaseParse  = "parse"
	PhaseFormat = "format"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer tracks the duration of driver phases for --timings.
// A nil *Timer is valid and records nothing.
type Timer struct {
	phases   []phase
	observer PhaseObserver
}

// NewTimer creates a Timer; observer may be nil.
func NewTimer(observer PhaseObserver) *Timer {
	return &Timer{phases: make([]phase, 0, 4), observer: observer}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	if t.observer != nil {
		t.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.dur = time.Since(p.start)
	p.note = note
	if t.observer != nil {
		t.observer(PhaseEvent{Name: p.name, Status: PhaseEnd, Elapsed: p.dur})
	}
}

// PhaseReport представляет фазу таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// TimingReport описывает агрегированные данные таймера.
type TimingReport struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns every phase and the total in milliseconds.
func (t *Timer) Report() TimingReport {
	if t == nil || len(t.phases) == 0 {
		return TimingReport{}
	}
	report := TimingReport{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.dur
		report.Phases[i] = PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note}
	}
	report.TotalMS = millis(total)
	return report
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %8.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// AppendTimingDiagnostic adds an OBS6001 info diagnostic carrying the
// report as a JSON note; it is used by --timings with --format json.
func AppendTimingDiagnostic(bag *diag.Bag, path string, report TimingReport) {
	if bag == nil {
		return
	}
	msg := fmt.Sprintf("timings: total %.2f ms", report.TotalMS)
	if path != "" {
		msg += " (" + path + ")"
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data))

	if bag.Add(entry) {
		return
	}
	// bag полон: таймингу всё равно нужно место
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
