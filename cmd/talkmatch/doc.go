// Package main hosts the talkmatch CLI entrypoint and command graph.
//
// The Cobra command tree seeds the database from exported fixtures, runs a
// reconciliation, and reports coverage and persisted pairs. It centralizes
// configuration resolution, logger setup and store access so subcommands
// stay thin; matching logic lives in internal/reconcile and internal/matcher.
package main
