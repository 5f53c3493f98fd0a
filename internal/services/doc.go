// Package services defines shared utilities consumed by the store, the
// matcher, the reconciliation driver and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, pass names and talk ids for
//     logging.
//   - Structured error markers plus the Wrap helper so callers classify
//     failures with errors.Is and map them to exit codes.
//
// Use these helpers when wiring new components so error handling and
// observability stay uniform across a run.
package services
