// Package reconcile drives one reconciliation run end to end.
//
// A run takes the run lock, loads talks, videos and slides from storage,
// validates the curated override file against them, clears the previous
// match relations, runs the slide matcher followed by the ordered
// talk-to-video passes, and writes every accumulated pair back to storage.
// Inserts fan out through an errgroup; the run fails on the first insert
// error.
package reconcile
