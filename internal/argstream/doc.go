// Package argstream provides a sequential cursor over raw command-line tokens.
// Option handlers pull their arguments from a Stream one token at a time, and
// running out of tokens is reported as an error rather than a crash.
package argstream
