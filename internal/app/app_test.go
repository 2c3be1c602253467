package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/sweepdeck/internal/metrics"
	"github.com/vk/sweepdeck/internal/participant"
	"github.com/vk/sweepdeck/internal/timing"
)

func recordedTiming() *timing.Timing {
	t := timing.New()
	t.Set(timing.Solve, 1, 5.0)
	t.Set(timing.SweepSolver, 10, 4.5)
	t.Set(timing.SweepSubdomain, 10, 4.0)
	return t
}

func TestRun_PrintsFullReport(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	solver := &StaticSolver{Timing: recordedTiming()}
	testApp, out, _ := SetupAppTest(t, DefaultConfig(), solver)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 1, solver.Calls)

	report := out.String()
	for _, want := range []string{
		"Input Parameters",
		"Zones:                 16 x 16 x 16  (4096 total)",
		"Block solve method:    Sweep",
		"Timers",
		"SweepSubdomain",
		"Figures of Merit",
		"Sweep efficiency :  80.00000",
		"Number of unknowns: 12582912",
	} {
		require.Contains(t, report, want)
	}
	require.True(t, strings.HasSuffix(report, "END\n"), "report should end with END")
	require.Less(t, strings.Index(report, "Input Parameters"), strings.Index(report, "Figures of Merit"))
}

func TestRun_WithoutSolverStopsAfterInputParameters(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	testApp, out, logs := SetupAppTest(t, DefaultConfig(), nil)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Input Parameters")
	require.NotContains(t, out.String(), "Figures of Merit")
	require.Contains(t, out.String(), "END")
	require.Contains(t, logs.String(), "No solver or timing file configured")
}

func TestRun_DegenerateTiming(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tm := timing.New()
	tm.Set(timing.Solve, 1, 0)
	tm.Set(timing.SweepSolver, 10, 0)
	testApp, out, _ := SetupAppTest(t, DefaultConfig(), &StaticSolver{Timing: tm})

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, metrics.ErrDegenerateTiming)
	require.NotContains(t, out.String(), "Figures of Merit")
	require.NotContains(t, out.String(), "NaN")
	require.NotContains(t, out.String(), "Inf")
}

func TestRun_SolverFailure(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	boom := errors.New("boom")
	testApp, _, _ := SetupAppTest(t, DefaultConfig(), &StaticSolver{Err: boom})

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "solve failed")
}

func TestRun_NonReporterIsSilent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	cfg := DefaultConfig()
	cfg.Run.Procs = [3]int{2, 1, 1}
	cfg.CSVPath = filepath.Join(t.TempDir(), "runs.csv")
	solver := &StaticSolver{Timing: recordedTiming()}
	testApp, out, _ := SetupAppTestAs(t, cfg, participant.Participant{Rank: 1, Size: 2}, solver)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 1, solver.Calls)
	require.Empty(t, out.String())
	require.NoFileExists(t, cfg.CSVPath)
}

func TestRun_FileSinks(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Run.RunName = "baseline"
	cfg.CSVPath = filepath.Join(dir, "runs.csv")
	cfg.MetricsPath = filepath.Join(dir, "sweepdeck.prom")
	testApp, _, _ := SetupAppTest(t, cfg, &StaticSolver{Timing: recordedTiming()})

	// --- Act ---
	require.NoError(t, testApp.Run(context.Background()))
	require.NoError(t, testApp.Run(context.Background()))

	// --- Assert ---
	csvData, err := os.ReadFile(cfg.CSVPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 3, "header is written once, then one row per run")
	require.True(t, strings.HasPrefix(lines[0], "report_id,"))
	require.Contains(t, lines[1], ",baseline,")

	promData, err := os.ReadFile(cfg.MetricsPath)
	require.NoError(t, err)
	require.Contains(t, string(promData), "sweepdeck_sweep_efficiency_percent{")
	require.Contains(t, string(promData), `run_name="baseline"`)
}

func TestRun_ReplaysTimingFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "timing.hcl")
	content := `
counter "Solve" {
  count = 1
  total = 5.0
}
counter "SweepSolver" {
  count = 10
  total = 4.5
}
counter "SweepSubdomain" {
  count = 10
  total = 2.5
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg := DefaultConfig()
	cfg.TimingsPath = path
	testApp, out, _ := SetupAppTest(t, cfg, nil)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Sweep efficiency :  50.00000")
}

func TestRun_ReplayWarnsOnIterationMismatch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "timing.hcl")
	content := "counter \"Solve\" {\n  count = 1\n  total = 2\n}\ncounter \"SweepSolver\" {\n  count = 4\n  total = 2\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg := DefaultConfig()
	cfg.TimingsPath = path
	testApp, _, logs := SetupAppTest(t, cfg, nil)

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, logs.String(), "Recorded iteration count differs")
}
