// Package observ measures the phases of a logdoc run: one per severity
// pass, then rendering and writing.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured step. Stop or Fail closes it; later calls are ignored.
type Phase struct {
	timer *Timer
	name  string
	start time.Time
	dur   time.Duration
	items int
	note  string
	done  bool
}

// Timer collects phases in start order. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []*Phase
	now    func() time.Time
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Start opens a phase named name.
func (t *Timer) Start(name string) *Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := &Phase{timer: t, name: name, start: t.now()}
	t.phases = append(t.phases, p)
	return p
}

// Stop closes the phase with the number of items it produced.
func (p *Phase) Stop(items int, note string) {
	if p == nil {
		return
	}
	t := p.timer
	t.mu.Lock()
	defer t.mu.Unlock()
	if p.done {
		return
	}
	p.done = true
	p.dur = t.now().Sub(p.start)
	p.items = items
	p.note = note
}

// Fail closes the phase with zero items and the error as note.
func (p *Phase) Fail(err error) {
	note := "failed"
	if err != nil {
		note += ": " + err.Error()
	}
	p.Stop(0, note)
}

// PhaseReport is the serializable form of a closed phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Items      int     `json:"items"`
	Note       string  `json:"note,omitempty"`
}

// Report lists the closed phases and their total duration.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the closed phases; open ones are left out.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var rep Report
	var total time.Duration
	for _, p := range t.phases {
		if !p.done {
			continue
		}
		total += p.dur
		rep.Phases = append(rep.Phases, PhaseReport{
			Name:       p.name,
			DurationMS: millis(p.dur),
			Items:      p.items,
			Note:       p.note,
		})
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary renders the report as an aligned text table.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&b, "  %-16s %9.2f ms %6d", p.Name, p.DurationMS, p.Items)
		if p.Note != "" {
			b.WriteString("  " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-16s %9.2f ms\n", "total", rep.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
