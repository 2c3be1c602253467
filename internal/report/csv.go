package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vk/sweepdeck/internal/ctxlog"
)

var csvHeader = []string{
	"report_id", "created_at", "run_name", "participants",
	"groups", "directions", "zones", "unknowns", "iterations",
	"method", "arch", "layout",
	"solve_time", "iteration_time", "grind_time", "throughput", "sweep_efficiency",
}

// CSVSink appends one row per report to a CSV file, writing the header when
// the file is new or empty.
type CSVSink struct {
	Path string
}

func (s *CSVSink) Name() string { return "csv" }

// Publish appends r to the file at s.Path.
func (s *CSVSink) Publish(ctx context.Context, r Report) error {
	logger := ctxlog.FromContext(ctx).With("sink", s.Name(), "path", s.Path)

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV report %s: %w", s.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat CSV report %s: %w", s.Path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		logger.Debug("Writing CSV header.")
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write CSV report %s: %w", s.Path, err)
		}
	}
	if err := w.Write(csvRow(r)); err != nil {
		return fmt.Errorf("failed to write CSV report %s: %w", s.Path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV report %s: %w", s.Path, err)
	}
	logger.Debug("Report row appended.", "report_id", r.ID)
	return nil
}

func csvRow(r Report) []string {
	c, fm := r.Config, r.Figures
	return []string{
		r.ID,
		r.CreatedAt.Format(time.RFC3339),
		c.RunName,
		strconv.Itoa(r.Participants),
		strconv.Itoa(c.Groups),
		strconv.Itoa(c.Directions),
		strconv.Itoa(c.TotalZones()),
		strconv.FormatUint(fm.UnknownCount, 10),
		strconv.FormatUint(fm.Iterations, 10),
		c.Method.Flag(),
		c.Arch.String(),
		c.Layout.String(),
		strconv.FormatFloat(fm.SolveTime, 'g', -1, 64),
		strconv.FormatFloat(fm.IterationTime, 'g', -1, 64),
		strconv.FormatFloat(fm.GrindTime, 'g', -1, 64),
		strconv.FormatFloat(fm.Throughput, 'g', -1, 64),
		strconv.FormatFloat(fm.SweepEfficiency, 'g', -1, 64),
	}
}
