package bvh

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Profiler accumulates wall time per named build phase. A nil *Profiler
// ignores every call.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Counts     map[string]int
	Order      []string
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		Counts:     make(map[string]int),
		Order:      make([]string, 0),
	}
}

func (p *Profiler) BeginScope(name string) {
	if p == nil {
		return
	}
	if _, seen := p.Counts[name]; !seen {
		p.Order = append(p.Order, name)
		p.Counts[name] = 0
	}
	p.StartTimes[name] = time.Now()
}

func (p *Profiler) EndScope(name string) {
	if p == nil {
		return
	}
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] += time.Since(start)
		p.Counts[name]++
		delete(p.StartTimes, name)
	}
}

// Slowest returns scope names ordered by accumulated time, longest first.
func (p *Profiler) Slowest() []string {
	if p == nil {
		return nil
	}
	names := append([]string(nil), p.Order...)
	sort.SliceStable(names, func(i, j int) bool {
		return p.Scopes[names[i]] > p.Scopes[names[j]]
	})
	return names
}

func (p *Profiler) String() string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for _, name := range p.Order {
		fmt.Fprintf(&sb, "%s: %.2fms (%d)\n", name, float64(p.Scopes[name].Microseconds())/1000.0, p.Counts[name])
	}
	return sb.String()
}
