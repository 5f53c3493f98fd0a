// Package store persists talks, videos, slides and their match relations in
// SQLite.
//
// The database is the system of record for a reconciliation run: the driver
// loads the three record sets from it, clears both match tables, then inserts
// every pair the passes produced. Pair tables carry UNIQUE constraints so a
// duplicated insert is silently dropped. The schema is versioned; a mismatch
// is reported rather than migrated.
package store
