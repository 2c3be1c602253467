package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/vk/sweepdeck/internal/app"
	"github.com/vk/sweepdeck/internal/argstream"
	"github.com/vk/sweepdeck/internal/fieldcodec"
	"github.com/vk/sweepdeck/internal/hcl_adapter"
	"github.com/vk/sweepdeck/internal/metrics"
	"github.com/vk/sweepdeck/internal/runconfig"
)

// Process exit codes. Each failure kind has its own code so scripted
// invocations can tell them apart.
const (
	ExitOK                   = 0
	ExitFailure              = 1
	ExitHelp                 = 2
	ExitStreamExhausted      = 3
	ExitMalformedValue       = 4
	ExitUnknownOption        = 5
	ExitInvalidConfiguration = 6
	ExitDegenerateTiming     = 7
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError. Message is what gets
// shown to the user; it may be empty when there is nothing to show.
func (e *ExitError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor classifies err into one of the Exit* codes.
func ExitCodeFor(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrHelp):
		return ExitHelp
	case errors.Is(err, argstream.ErrStreamExhausted):
		return ExitStreamExhausted
	case errors.Is(err, ErrUnknownOption):
		return ExitUnknownOption
	case errors.Is(err, fieldcodec.ErrNotNumeric),
		errors.Is(err, fieldcodec.ErrWrongArity),
		errors.Is(err, fieldcodec.ErrUnknownChoice),
		errors.Is(err, hcl_adapter.ErrInvalidDeck):
		return ExitMalformedValue
	case errors.Is(err, runconfig.ErrInvalidConfiguration):
		return ExitInvalidConfiguration
	case errors.Is(err, metrics.ErrDegenerateTiming):
		return ExitDegenerateTiming
	default:
		return ExitFailure
	}
}

// NewExitError wraps err with the exit code it classifies as.
func NewExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: ExitCodeFor(err), Message: err.Error(), Err: err}
}

// Parse processes command-line arguments into an application configuration.
// A help request prints usage to output and returns an ExitError with
// ExitHelp and no message. Any other failure also prints usage and returns an
// ExitError classified by ExitCodeFor whose message names the offending
// option; reporting that message is left to the caller. The run
// configuration is not yet validated.
func Parse(args []string, output io.Writer) (*app.Config, error) {
	slog.Debug("CLI parser started.", "args", len(args))
	d := NewDispatcher()
	cfg := app.DefaultConfig()

	ctx := context.Background()
	if err := d.Dispatch(ctx, argstream.New(args), cfg); err != nil {
		if errors.Is(err, ErrHelp) {
			slog.Debug("Help requested, printing usage.")
			d.PrintUsage(output)
			return nil, &ExitError{Code: ExitHelp, Err: err}
		}
		slog.Debug("Argument parsing failed.", "error", err)
		d.PrintUsage(output)
		return nil, NewExitError(err)
	}
	slog.Debug("Arguments parsed successfully.")

	config, err := app.NewConfig(*cfg)
	if err != nil {
		return nil, NewExitError(err)
	}

	slog.Debug("CLI parser finished successfully.", "run_name", config.Run.RunName, "decks", len(config.Decks))
	return config, nil
}
