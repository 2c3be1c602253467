package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/sweepdeck/internal/ctxlog"
	"github.com/vk/sweepdeck/internal/participant"
	"github.com/vk/sweepdeck/internal/report"
	"github.com/vk/sweepdeck/internal/runconfig"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW        io.Writer
	logger      *slog.Logger
	config      *Config
	run         runconfig.Frozen
	participant participant.Participant
	solver      Solver
	sinks       []report.Sink
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW. A nil solver falls back to replaying cfg.TimingsPath when set;
// without either, the run stops after echoing its input parameters.
func NewApp(outW, logW io.Writer, cfg *Config, run runconfig.Frozen, p participant.Participant, solver Solver) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("rank", p.Rank)
	logger.Debug("Logger configured successfully.")

	if solver == nil && cfg.TimingsPath != "" {
		solver = NewReplaySolver(cfg.TimingsPath)
	}

	return &App{
		outW:        outW,
		logger:      logger,
		config:      cfg,
		run:         run,
		participant: p,
		solver:      solver,
		sinks:       sinksFor(cfg),
	}
}

// sinksFor returns the report sinks enabled by cfg, in publishing order.
func sinksFor(cfg *Config) []report.Sink {
	var sinks []report.Sink
	if cfg.CSVPath != "" {
		sinks = append(sinks, &report.CSVSink{Path: cfg.CSVPath})
	}
	if cfg.MetricsPath != "" {
		sinks = append(sinks, &report.TextfileSink{Path: cfg.MetricsPath})
	}
	if cfg.PublishURL != "" {
		sinks = append(sinks, &report.SocketIOSink{URL: cfg.PublishURL})
	}
	return sinks
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
