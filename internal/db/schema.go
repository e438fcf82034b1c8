package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete modern schema for fresh installs. It reflects the
// current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests load
// it via GetSchemaSQL(); do not hardcode CREATE TABLE statements in test
// files. If repository code references a column that is missing here, tests
// fail immediately with "no such column" instead of drifting.
//
// The unique index on (owner_id, position) is live at all times. Position
// rewrites must therefore stage rows through a disjoint negative range inside
// a transaction; see the todo repository.
const SchemaSQL = `
-- Owners (opaque identities; passkey credentials live outside this service)
CREATE TABLE IF NOT EXISTS owners (
	id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Todos (one ordered list per owner)
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id TEXT NOT NULL,
	title TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME,
	FOREIGN KEY (owner_id) REFERENCES owners(id) ON DELETE CASCADE,
	UNIQUE(owner_id, position)
);

CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id);
`

// InitSchema prepares the database schema. Fresh installs get SchemaSQL
// directly with all migrations marked applied; existing databases run any
// pending migrations.
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	var hasVersionTable int
	err = db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&hasVersionTable)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if hasVersionTable == 0 {
		var hasTodos int
		err = db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='todos'",
		).Scan(&hasTodos)
		if err != nil {
			return fmt.Errorf("failed to inspect schema: %w", err)
		}

		if hasTodos > 0 {
			// Pre-versioning database - upgrade through migrations.
			return RunMigrations()
		}

		// Completely fresh install - create the modern schema directly and
		// mark every migration as applied.
		if _, err := db.Exec(SchemaSQL); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		if err := createVersionTable(db); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
		}
		return nil
	}

	return RunMigrations()
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
