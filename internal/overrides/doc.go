// Package overrides loads the curated talk-to-video override list.
//
// Overrides are matches no automated rule can derive. They live in a
// versioned JSON or YAML file maintained outside the code, are validated
// against the loaded talks and videos before any pass runs, and are applied
// first by the matcher.
package overrides
