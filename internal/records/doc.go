// Package records defines the conference record shapes shared by the store,
// the matcher and the CLI: talks, videos, slide decks and the two match
// relations produced by a reconciliation run.
//
// Records are read-only inputs to matching. Derived slug fields are filled by
// Normalized so every consumer compares the same canonical form.
package records
