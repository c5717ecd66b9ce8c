package database

import (
	"context"
	"fmt"
	"strings"

	"redline/internal/log"
)

// Migration represents a database migration
type Migration struct {
	ID          int
	Description string
	SQL         string
}

// migrations contains all database migrations in order
var migrations = []Migration{
	{
		ID:          1,
		Description: "Create users table",
		SQL: `
CREATE TABLE IF NOT EXISTS users (
	username        TEXT PRIMARY KEY,
	password_hash   TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	last_login      TEXT,
	login_count     INTEGER NOT NULL DEFAULT 0,
	reputation      INTEGER NOT NULL DEFAULT 0,
	is_active       INTEGER NOT NULL DEFAULT 1,
	failed_attempts INTEGER NOT NULL DEFAULT 0
);`,
	},
	{
		ID:          2,
		Description: "Create saves table",
		SQL: `
CREATE TABLE IF NOT EXISTS saves (
	username TEXT PRIMARY KEY,
	version  TEXT NOT NULL,
	saved_at TEXT NOT NULL,
	payload  BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saves_saved_at ON saves(saved_at);`,
	},
}

// runMigrations executes all pending migrations
func (d *SQLiteDatabase) runMigrations(ctx context.Context) error {
	if err := d.ensureSchemaVersionTable(ctx); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := d.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.ID <= currentVersion {
			continue
		}
		log.Info("applying database migration", "id", migration.ID, "description", migration.Description)
		if err := d.applyMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.ID, err)
		}
	}
	return nil
}

func (d *SQLiteDatabase) ensureSchemaVersionTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := d.db.ExecContext(ctx, query)
	return err
}

// SchemaVersion returns the highest applied migration.
func (d *SQLiteDatabase) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := d.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version;`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// applyMigration applies a single migration
func (d *SQLiteDatabase) applyMigration(ctx context.Context, migration Migration) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(migration.SQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration statement: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?);`, migration.ID); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}
