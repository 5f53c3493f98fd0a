// Package logging assembles structured slog loggers used across talkmatch.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so matcher and driver code tag
// log lines with the run id, the pass name and the talk being matched. A
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
