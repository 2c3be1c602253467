// Package app drives a single run: it echoes the validated configuration,
// invokes the solver, derives the figures of merit from the solver's timing
// and hands the finished report to the configured sinks. It is decoupled
// from the command line; cmd/cli builds the Config and calls Run.
package app
