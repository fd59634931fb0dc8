// Package observ measures how long each phase of a completion request
// takes. The CLI prints the summary with --timings.
package observ

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"scriptsense/internal/trace"
)

// Phase is one measured step of a request.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	span  *trace.Span
}

// Timer collects phases. A nil *Timer ignores every call, so callers can
// pass it around unconditionally.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	tracer trace.Tracer
	parent uint64
}

// NewTimer returns an empty timer. Each phase also becomes a ScopePass
// span under parent when tracer is enabled.
func NewTimer(tracer trace.Tracer, parent uint64) *Timer {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Timer{phases: make([]Phase, 0, 4), tracer: tracer, parent: parent}
}

// Begin starts a phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{
		Name:  name,
		Start: time.Now(),
		span:  trace.Begin(t.tracer, trace.ScopePass, name, t.parent),
	})
	return len(t.phases) - 1
}

// End finishes the phase at idx.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
	p.span.End(note)
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report агрегирует фазы для вывода в JSON.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	phases := t.Phases()
	if len(phases) == 0 {
		return Report{}
	}
	r := Report{Phases: make([]PhaseReport, len(phases))}
	var total time.Duration
	for i, p := range phases {
		total += p.Dur
		r.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note}
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	var sb strings.Builder
	_ = t.WriteSummary(&sb)
	return sb.String()
}

func (t *Timer) WriteSummary(w io.Writer) error {
	r := t.Report()
	if _, err := fmt.Fprintln(w, "timings:"); err != nil {
		return err
	}
	for _, p := range r.Phases {
		line := fmt.Sprintf("  %-12s %8.3f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			line += "  " + p.Note
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-12s %8.3f ms\n", "total", r.TotalMS)
	return err
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
