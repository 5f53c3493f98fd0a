// Package textutil provides the text primitives the reconciliation passes are
// built on.
//
// The primary use cases are:
//   - Normalizing free text (talk titles, video names, presenter lines) into a
//     comparable slug
//   - Ranking slug pairs by Levenshtein edit distance
//   - Scoring the overlap between two presenter name lists
//
// Slugs are ASCII-oriented: accented letters fold to their base letter, a
// fixed punctuation set is deleted, and whitespace or dash runs collapse to a
// single hyphen. Normalize is idempotent, so a slug can be normalized again
// without changing it.
package textutil
