package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/sweepdeck/internal/runconfig"
	"github.com/vk/sweepdeck/internal/timing"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	snap, err := Compute(1000, 10, 5.0, 4.0)
	require.NoError(t, err)

	require.Equal(t, 0.5, snap.IterationTime)
	require.Equal(t, 0.5/1000, snap.GrindTime)
	require.InDelta(t, 0.0005, snap.GrindTime, 1e-18)
	require.Equal(t, 2000.0, snap.Throughput)
	require.Equal(t, 80.0, snap.SweepEfficiency)

	require.Equal(t, uint64(1000), snap.UnknownCount)
	require.Equal(t, uint64(10), snap.Iterations)
}

func TestCompute_Degenerate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		unknowns      uint64
		iterations    uint64
		solveTime     float64
		subdomainTime float64
		contains      string
	}{
		{name: "zero iterations", unknowns: 1000, iterations: 0, solveTime: 5, subdomainTime: 4, contains: "iteration count is zero"},
		{name: "zero unknowns", unknowns: 0, iterations: 10, solveTime: 5, subdomainTime: 4, contains: "unknown count is zero"},
		{name: "zero solve time", unknowns: 1000, iterations: 10, solveTime: 0, subdomainTime: 4, contains: "solve time"},
		{name: "negative solve time", unknowns: 1000, iterations: 10, solveTime: -1, subdomainTime: 0, contains: "solve time"},
		{name: "nan solve time", unknowns: 1000, iterations: 10, solveTime: math.NaN(), subdomainTime: 0, contains: "solve time"},
		{name: "negative subdomain time", unknowns: 1000, iterations: 10, solveTime: 5, subdomainTime: -1, contains: "subdomain time"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			snap, err := Compute(tc.unknowns, tc.iterations, tc.solveTime, tc.subdomainTime)
			require.ErrorIs(t, err, ErrDegenerateTiming)
			require.Contains(t, err.Error(), tc.contains)
			require.False(t, math.IsInf(snap.Throughput, 0))
			require.Equal(t, Snapshot{}, snap)
		})
	}
}

func TestUnknownCount(t *testing.T) {
	t.Parallel()

	cfg := runconfig.Default()
	cfg.Groups = 16
	cfg.Directions = 32
	cfg.DirSets = 8
	cfg.Zones = [3]int{4, 5, 6}
	frozen, err := cfg.Validate(1)
	require.NoError(t, err)

	require.Equal(t, uint64(16*32*120), UnknownCount(frozen))
}

func TestFromTiming(t *testing.T) {
	t.Parallel()

	tm := timing.New()
	tm.Set(timing.Solve, 1, 5.0)
	tm.Set(timing.SweepSolver, 10, 4.5)
	tm.Set(timing.SweepSubdomain, 10, 4.0)

	snap, err := FromTiming(1000, tm)
	require.NoError(t, err)
	require.Equal(t, 2000.0, snap.Throughput)
	require.Equal(t, 80.0, snap.SweepEfficiency)
}

func TestFromTiming_MissingCounters(t *testing.T) {
	t.Parallel()

	_, err := FromTiming(1000, timing.New())
	require.ErrorIs(t, err, ErrDegenerateTiming)
}
