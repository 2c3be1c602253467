package report

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/sweepdeck/internal/ctxlog"
)

const metricsNamespace = "sweepdeck"

// runLabels identify a report in every exported series.
var runLabels = []string{"report_id", "run_name", "method", "arch", "layout"}

// TextfileSink writes the figures of merit as Prometheus gauges in the text
// exposition format, for pickup by a node exporter textfile collector.
type TextfileSink struct {
	Path string
}

func (s *TextfileSink) Name() string { return "textfile" }

func (s *TextfileSink) Publish(ctx context.Context, r Report) error {
	logger := ctxlog.FromContext(ctx).With("sink", s.Name(), "path", s.Path)

	reg, err := newRunRegistry(r)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(s.Path, reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", s.Path, err)
	}
	logger.Debug("Metrics textfile written.", "report_id", r.ID)
	return nil
}

// newRunRegistry builds a fresh registry holding one sample per figure.
func newRunRegistry(r Report) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, runLabels)
	}
	gauges := []struct {
		vec   *prometheus.GaugeVec
		value float64
	}{
		{gauge("unknowns", "Number of unknowns solved for."), float64(r.Figures.UnknownCount)},
		{gauge("iterations", "Number of solver iterations."), float64(r.Figures.Iterations)},
		{gauge("solve_seconds", "Total solve time in seconds."), r.Figures.SolveTime},
		{gauge("grind_seconds", "Seconds per iteration per unknown."), r.Figures.GrindTime},
		{gauge("throughput", "Unknowns per second per iteration."), r.Figures.Throughput},
		{gauge("sweep_efficiency_percent", "Share of solve time spent in the subdomain sweep."), r.Figures.SweepEfficiency},
		{gauge("participants", "Number of processes in the run."), float64(r.Participants)},
	}

	c := r.Config
	labels := prometheus.Labels{
		"report_id": r.ID,
		"run_name":  c.RunName,
		"method":    c.Method.Flag(),
		"arch":      c.Arch.String(),
		"layout":    c.Layout.String(),
	}
	for _, g := range gauges {
		if err := reg.Register(g.vec); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
		g.vec.With(labels).Set(g.value)
	}
	return reg, nil
}
