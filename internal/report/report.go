// Package report prints the input parameters, timers and figures of merit of a
// run, and pushes the finished report to external sinks. Sinks only receive
// values that were already computed; nothing is read back from them.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vk/sweepdeck/internal/metrics"
	"github.com/vk/sweepdeck/internal/participant"
	"github.com/vk/sweepdeck/internal/runconfig"
)

// Report is everything known about a finished run.
type Report struct {
	ID           string
	CreatedAt    time.Time
	Participants int
	Config       runconfig.Config
	Figures      metrics.Snapshot
}

// New stamps a report with a fresh ID.
func New(cfg runconfig.Frozen, p participant.Participant, snap metrics.Snapshot) Report {
	return Report{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Participants: p.Size,
		Config:       cfg.Config(),
		Figures:      snap,
	}
}

// Globals returns the run attributes recorded alongside the figures of merit.
func (r Report) Globals() map[string]any {
	c := r.Config
	method := "sweep"
	if c.Method == runconfig.MethodBlockJacobi {
		method = "block jacobi"
	}
	return map[string]any{
		"sweepdeck.run_name":        c.RunName,
		"sweepdeck.nx":              c.Zones[0],
		"sweepdeck.ny":              c.Zones[1],
		"sweepdeck.nz":              c.Zones[2],
		"sweepdeck.groups":          c.Groups,
		"sweepdeck.directions":      c.Directions,
		"sweepdeck.legendre_order":  c.LegendreOrder,
		"sweepdeck.parallel_method": method,
		"sweepdeck.architecture":    c.Arch.String(),
		"sweepdeck.layout":          c.Layout.String(),
		"sweepdeck.participants":    r.Participants,
	}
}

// Sink receives finished reports.
type Sink interface {
	Name() string
	Publish(ctx context.Context, r Report) error
}
