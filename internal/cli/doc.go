// Package cli turns command-line tokens into the application's run
// configuration. Every recognized flag is an entry in a table that maps the
// flag name to a handler; the handler pulls its arguments from an
// argstream.Stream and decodes them with fieldcodec. Failures are classified
// into distinct exit codes, but this package never exits the process itself.
package cli
