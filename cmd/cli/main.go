package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/sweepdeck/internal/app"
	"github.com/vk/sweepdeck/internal/cli"
	"github.com/vk/sweepdeck/internal/participant"
)

// main is the entrypoint for the sweepdeck application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:], os.LookupEnv); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Every returned error is a *cli.ExitError; only the reporting
// participant's errors carry a message.
func run(outW, logW io.Writer, args []string, lookupEnv func(string) (string, bool)) error {
	p, err := participant.FromEnv(lookupEnv)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("cannot determine participant: %w", err))
	}

	fail := func(err error) error {
		exitErr := *cli.NewExitError(err)
		if !p.IsReporter() {
			exitErr.Message = ""
		}
		return &exitErr
	}

	usageW := outW
	if !p.IsReporter() {
		usageW = io.Discard
	}
	appConfig, err := cli.Parse(args, usageW)
	if err != nil {
		return fail(err)
	}

	frozen, err := appConfig.Run.Validate(p.Size)
	if err != nil {
		return fail(err)
	}

	sweepApp := app.NewApp(outW, logW, appConfig, frozen, p, nil)
	if err := sweepApp.Run(context.Background()); err != nil {
		return fail(err)
	}
	return nil
}
