// Package timing holds the named timing counters a solver run produces. Each
// counter records how many times a timed region was entered and the total
// seconds spent inside it.
package timing

import (
	"sort"
	"time"
)

// Counter names the report reads.
const (
	Solve          = "Solve"
	SweepSolver    = "SweepSolver"
	SweepSubdomain = "SweepSubdomain"
)

// Counter is one named timed region.
type Counter struct {
	Name  string
	Count uint64
	Total float64
}

// Timing is a set of counters keyed by name. The zero value is not usable;
// call New.
type Timing struct {
	counters map[string]*Counter
}

// New creates an empty Timing.
func New() *Timing {
	return &Timing{counters: make(map[string]*Counter)}
}

// Record adds one entry of the given duration to the named counter.
func (t *Timing) Record(name string, elapsed time.Duration) {
	c := t.counter(name)
	c.Count++
	c.Total += elapsed.Seconds()
}

// Set overwrites the named counter.
func (t *Timing) Set(name string, count uint64, total float64) {
	c := t.counter(name)
	c.Count = count
	c.Total = total
}

// Count returns how often the named region ran, or 0 if it never did.
func (t *Timing) Count(name string) uint64 {
	if c, ok := t.counters[name]; ok {
		return c.Count
	}
	return 0
}

// Total returns the seconds spent in the named region, or 0 if it never ran.
func (t *Timing) Total(name string) float64 {
	if c, ok := t.counters[name]; ok {
		return c.Total
	}
	return 0
}

// Counters returns a copy of every counter sorted by name.
func (t *Timing) Counters() []Counter {
	out := make([]Counter, 0, len(t.counters))
	for _, c := range t.counters {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *Timing) counter(name string) *Counter {
	c, ok := t.counters[name]
	if !ok {
		c = &Counter{Name: name}
		t.counters[name] = c
	}
	return c
}
