package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/sweepdeck/internal/metrics"
	"github.com/vk/sweepdeck/internal/report"
)

// Run executes one solve and reports it. Only the reporting participant
// writes to the output and publishes to sinks; every participant solves.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "decks", a.config.Decks)

	reporter := a.participant.IsReporter()
	if reporter {
		report.PrintInputParameters(a.outW, a.run, a.participant)
	}

	if a.solver == nil {
		a.logger.Warn("No solver or timing file configured, figures of merit not computed.")
		if reporter {
			fmt.Fprintln(a.outW, "\nEND")
		}
		return nil
	}

	a.logger.Info("Starting solve.", "iterations", a.run.Iterations(), "method", a.run.Method().Flag())
	t, err := a.solver.Solve(ctx, a.run)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	a.logger.Info("Solve finished.")

	if !reporter {
		return nil
	}
	report.PrintTiming(a.outW, t)

	snap, err := metrics.FromTiming(metrics.UnknownCount(a.run), t)
	if err != nil {
		return fmt.Errorf("cannot compute figures of merit: %w", err)
	}
	report.PrintFiguresOfMerit(a.outW, snap)

	rep := report.New(a.run, a.participant, snap)
	var errs []error
	for _, sink := range a.sinks {
		a.logger.Debug("Publishing report.", "sink", sink.Name(), "report_id", rep.ID)
		if err := sink.Publish(ctx, rep); err != nil {
			a.logger.Error("Failed to publish report.", "sink", sink.Name(), "error", err)
			errs = append(errs, fmt.Errorf("sink %s: %w", sink.Name(), err))
		}
	}

	fmt.Fprintln(a.outW, "\nEND")
	a.logger.Debug("App.Run method finished.")
	return errors.Join(errs...)
}
