package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"talkmatch/internal/services"
)

//go:embed schema.sql
var schemaSQL string

//go:embed match_tables.sql
var matchTablesSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; older databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return wrap("check schema", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return wrap("read schema version", err)
	}
	if version != schemaVersion {
		return services.Wrap(services.ErrConfiguration, "store", "open",
			fmt.Sprintf("database has version %d, expected %d (delete the database and re-import)", version, schemaVersion),
			ErrSchemaMismatch)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin schema", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return wrap("create schema", err)
	}
	if _, err := tx.ExecContext(ctx, matchTablesSQL); err != nil {
		return wrap("create match tables", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return wrap("record schema version", err)
	}
	if err := tx.Commit(); err != nil {
		return wrap("commit schema", err)
	}
	return nil
}

// ResetMatches drops and recreates both match relations so a run starts
// from empty output. Prior results are replaced, never merged.
func (s *Store) ResetMatches(ctx context.Context) error {
	return s.inTx(ctx, "reset matches", func(tx *sql.Tx) error {
		return recreateMatchTables(ensureContext(ctx), tx)
	})
}

func recreateMatchTables(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS matches; DROP TABLE IF EXISTS slide_matches;"); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, matchTablesSQL)
	return err
}
