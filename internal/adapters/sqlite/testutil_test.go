// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests always run against
// the authoritative schema. Do not hardcode CREATE TABLE statements in test
// files; use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/todo/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedOwner inserts a test owner and returns its ID.
func seedOwner(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "owner-001"
	}
	_, err := db.Exec("INSERT INTO owners (id, display_name) VALUES (?, ?)", id, "Test Owner")
	if err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	return id
}

// seedTodo inserts a test todo at an explicit position and returns its ID.
func seedTodo(t *testing.T, db *sql.DB, ownerID, title string, position int) int64 {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO todos (owner_id, title, position) VALUES (?, ?, ?)",
		ownerID, title, position,
	)
	if err != nil {
		t.Fatalf("failed to seed todo: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded todo id: %v", err)
	}
	return id
}

// positionsOf reads an owner's (title, position) pairs ordered by position.
func positionsOf(t *testing.T, db *sql.DB, ownerID string) map[string]int {
	t.Helper()
	rows, err := db.Query("SELECT title, position FROM todos WHERE owner_id = ?", ownerID)
	if err != nil {
		t.Fatalf("failed to read positions: %v", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var title string
		var pos int
		if err := rows.Scan(&title, &pos); err != nil {
			t.Fatalf("failed to scan position: %v", err)
		}
		out[title] = pos
	}
	return out
}

// assertDense fails unless the owner's positions are exactly {1..N}.
func assertDense(t *testing.T, db *sql.DB, ownerID string) {
	t.Helper()
	rows, err := db.Query(
		"SELECT position FROM todos WHERE owner_id = ? ORDER BY position",
		ownerID,
	)
	if err != nil {
		t.Fatalf("failed to read positions: %v", err)
	}
	defer rows.Close()

	want := 1
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			t.Fatalf("failed to scan position: %v", err)
		}
		if pos != want {
			t.Fatalf("positions not dense: got %d at rank %d", pos, want)
		}
		want++
	}
}
