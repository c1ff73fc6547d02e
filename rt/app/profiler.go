package app

import (
	"fmt"
	"slices"
	"time"
)

// Profiler keeps the CPU time each phase took in the most recent frame,
// plus a few static counters. Phases are reported in first-seen order.
type Profiler struct {
	order   []string
	started map[string]time.Time
	last    map[string]time.Duration
	counts  map[string]int

	now func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		started: make(map[string]time.Time),
		last:    make(map[string]time.Duration),
		counts:  make(map[string]int),
		now:     time.Now,
	}
}

func (p *Profiler) Begin(phase string) {
	if _, seen := p.last[phase]; !seen {
		p.order = append(p.order, phase)
		p.last[phase] = 0
	}
	p.started[phase] = p.now()
}

// End is a no-op for a phase that was never begun.
func (p *Profiler) End(phase string) {
	start, ok := p.started[phase]
	if !ok {
		return
	}
	delete(p.started, phase)
	p.last[phase] = p.now().Sub(start)
}

func (p *Profiler) Last(phase string) time.Duration {
	return p.last[phase]
}

func (p *Profiler) SetCount(name string, n int) {
	p.counts[name] = n
}

// Lines renders timings then counters, one per line.
func (p *Profiler) Lines() []string {
	lines := make([]string, 0, len(p.order)+len(p.counts))
	for _, phase := range p.order {
		ms := float64(p.last[phase].Microseconds()) / 1000
		lines = append(lines, fmt.Sprintf("%-10s %6.2f ms", phase, ms))
	}
	names := make([]string, 0, len(p.counts))
	for n := range p.counts {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		lines = append(lines, fmt.Sprintf("%-10s %d", n, p.counts[n]))
	}
	return lines
}
