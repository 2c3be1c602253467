// Package metrics derives the figures of merit of a solver run from its
// unknown count and timing totals.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/sweepdeck/internal/runconfig"
	"github.com/vk/sweepdeck/internal/timing"
)

// ErrDegenerateTiming is returned when a denominator would be zero or the
// timing data is otherwise unusable.
var ErrDegenerateTiming = errors.New("degenerate timing data")

// Snapshot holds the inputs and derived figures of a single run.
type Snapshot struct {
	UnknownCount  uint64
	Iterations    uint64
	SolveTime     float64
	SubdomainTime float64

	// IterationTime is seconds per iteration.
	IterationTime float64
	// GrindTime is seconds per iteration per unknown.
	GrindTime float64
	// Throughput is unknowns per second-per-iteration.
	Throughput float64
	// SweepEfficiency is the percentage of solve time spent in subdomain work.
	SweepEfficiency float64
}

// Compute derives a Snapshot. It fails with ErrDegenerateTiming instead of
// producing NaN or Inf.
func Compute(unknowns, iterations uint64, solveTime, subdomainTime float64) (Snapshot, error) {
	switch {
	case iterations == 0:
		return Snapshot{}, fmt.Errorf("%w: iteration count is zero", ErrDegenerateTiming)
	case unknowns == 0:
		return Snapshot{}, fmt.Errorf("%w: unknown count is zero", ErrDegenerateTiming)
	case !(solveTime > 0) || math.IsInf(solveTime, 0):
		return Snapshot{}, fmt.Errorf("%w: solve time %g is not a positive finite number", ErrDegenerateTiming, solveTime)
	case subdomainTime < 0 || math.IsNaN(subdomainTime) || math.IsInf(subdomainTime, 0):
		return Snapshot{}, fmt.Errorf("%w: subdomain time %g is not a non-negative finite number", ErrDegenerateTiming, subdomainTime)
	}

	iterTime := solveTime / float64(iterations)
	return Snapshot{
		UnknownCount:    unknowns,
		Iterations:      iterations,
		SolveTime:       solveTime,
		SubdomainTime:   subdomainTime,
		IterationTime:   iterTime,
		GrindTime:       iterTime / float64(unknowns),
		Throughput:      float64(unknowns) / iterTime,
		SweepEfficiency: 100.0 * subdomainTime / solveTime,
	}, nil
}

// UnknownCount is the global number of unknowns: groups x directions x zones.
func UnknownCount(cfg runconfig.Frozen) uint64 {
	return uint64(cfg.Groups()) * uint64(cfg.Directions()) * uint64(cfg.TotalZones())
}

// FromTiming computes a Snapshot from a run's counters. The iteration count is
// the number of SweepSolver entries, the solve time is the Solve total and the
// subdomain time is the SweepSubdomain total.
func FromTiming(unknowns uint64, t *timing.Timing) (Snapshot, error) {
	return Compute(unknowns,
		t.Count(timing.SweepSolver),
		t.Total(timing.Solve),
		t.Total(timing.SweepSubdomain),
	)
}
