package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_owners_and_todos",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_completed_at_to_todos",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "enforce_unique_owner_position",
		Up:      migrationV3,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}

	if err := createVersionTable(db); err != nil {
		return err
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(db); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 creates the owners and todos tables
func migrationV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS owners (
			id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create owners table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			done INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (owner_id) REFERENCES owners(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}

	_, err = db.Exec("CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id)")
	if err != nil {
		return fmt.Errorf("failed to create owner index: %w", err)
	}

	return nil
}

// migrationV2 adds the completed_at timestamp to todos
func migrationV2(db *sql.DB) error {
	_, err := db.Exec("ALTER TABLE todos ADD COLUMN completed_at DATETIME")
	if err != nil {
		return fmt.Errorf("failed to add completed_at column: %w", err)
	}
	return nil
}

// migrationV3 rebuilds the todos table with the live UNIQUE(owner_id, position)
// constraint. Any pre-existing duplicate or sparse positions are renumbered
// densely per owner (ordered by position, then id) before the constraint
// takes effect.
func migrationV3(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE todos_new (
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
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create todos_new table: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO todos_new (id, owner_id, title, done, position, created_at, updated_at, completed_at)
		SELECT id, owner_id, title, done,
			ROW_NUMBER() OVER (PARTITION BY owner_id ORDER BY position, id),
			created_at, updated_at, completed_at
		FROM todos
	`)
	if err != nil {
		return fmt.Errorf("failed to copy todos: %w", err)
	}

	if _, err := db.Exec("DROP TABLE todos"); err != nil {
		return fmt.Errorf("failed to drop old todos table: %w", err)
	}
	if _, err := db.Exec("ALTER TABLE todos_new RENAME TO todos"); err != nil {
		return fmt.Errorf("failed to rename todos_new: %w", err)
	}
	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_todos_owner ON todos(owner_id)"); err != nil {
		return fmt.Errorf("failed to recreate owner index: %w", err)
	}

	return nil
}
