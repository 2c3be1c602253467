package app

import (
	"context"
	"fmt"

	"github.com/vk/sweepdeck/internal/ctxlog"
	"github.com/vk/sweepdeck/internal/hcl_adapter"
	"github.com/vk/sweepdeck/internal/runconfig"
	"github.com/vk/sweepdeck/internal/timing"
)

// Solver runs the transport solve for a validated configuration and reports
// the timing counters it collected.
type Solver interface {
	Solve(ctx context.Context, cfg runconfig.Frozen) (*timing.Timing, error)
}

// ReplaySolver stands in for the solver by loading counters recorded from an
// earlier run out of an HCL timing file.
type ReplaySolver struct {
	Path   string
	loader *hcl_adapter.Loader
}

// NewReplaySolver returns a solver that replays the timing file at path.
func NewReplaySolver(path string) *ReplaySolver {
	return &ReplaySolver{Path: path, loader: hcl_adapter.NewLoader()}
}

// Solve loads the recorded counters. A recorded iteration count that differs
// from the configured one is logged, not rejected.
func (s *ReplaySolver) Solve(ctx context.Context, cfg runconfig.Frozen) (*timing.Timing, error) {
	logger := ctxlog.FromContext(ctx).With("timings", s.Path)
	logger.Debug("Replaying recorded timing.")

	t, err := s.loader.LoadTimings(ctx, s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to replay timing: %w", err)
	}
	if n := t.Count(timing.SweepSolver); n != uint64(cfg.Iterations()) {
		logger.Warn("Recorded iteration count differs from the configured one.",
			"recorded", n, "configured", cfg.Iterations())
	}
	return t, nil
}
