// Package logging provides the slog handler git-bp writes diagnostics
// through: one "LEVEL message key=value..." line per record on stderr,
// with the level label colored when the terminal supports it.
package logging
