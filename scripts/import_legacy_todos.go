// +build ignore

package main

import (
	"bufio"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// One-off importer for plain-text todo lists (one title per line, lines
// starting with "x " count as already done). Appends to the end of the
// owner's list, keeping positions dense.
//
//	go run scripts/import_legacy_todos.go -owner <id> -file todo.txt [-dry-run]

func main() {
	owner := flag.String("owner", "", "Owner ID to import into (required)")
	file := flag.String("file", "", "Plain-text todo file (required)")
	dryRun := flag.Bool("dry-run", false, "Preview import without executing")
	flag.Parse()

	if *owner == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "both -owner and -file are required")
		os.Exit(1)
	}

	titles, doneFlags, err := readLegacyFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *file, err)
		os.Exit(1)
	}
	if len(titles) == 0 {
		fmt.Println("No todos found to import")
		return
	}

	fmt.Printf("Found %d todo(s) to import:\n\n", len(titles))
	for i, title := range titles {
		marker := " "
		if doneFlags[i] {
			marker = "x"
		}
		fmt.Printf("  [%s] %s\n", marker, title)
	}
	fmt.Println()

	if *dryRun {
		fmt.Println("=== DRY RUN - No changes made ===")
		return
	}

	dbPath := os.Getenv("TODO_DB")
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(homeDir, ".todo", "todo.db")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	imported, err := importTodos(db, *owner, titles, doneFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Import complete: %d todo(s) appended ===\n", imported)
}

func readLegacyFile(path string) ([]string, []bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var titles []string
	var doneFlags []bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		done := false
		if strings.HasPrefix(line, "x ") {
			done = true
			line = strings.TrimSpace(line[2:])
		}
		if line == "" {
			continue
		}
		titles = append(titles, line)
		doneFlags = append(doneFlags, done)
	}
	return titles, doneFlags, scanner.Err()
}

// importTodos appends all lines inside one transaction so a failure
// cannot leave the list with gaps.
func importTodos(db *sql.DB, ownerID string, titles []string, doneFlags []bool) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var max int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(position), 0) FROM todos WHERE owner_id = ?`, ownerID,
	).Scan(&max); err != nil {
		return 0, err
	}

	now := time.Now().Format(time.RFC3339)
	for i, title := range titles {
		done := 0
		completedAt := sql.NullString{}
		if doneFlags[i] {
			done = 1
			completedAt = sql.NullString{String: now, Valid: true}
		}
		if _, err := tx.Exec(
			`INSERT INTO todos (owner_id, title, done, position, created_at, updated_at, completed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			ownerID, title, done, max+1+i, now, now, completedAt,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(titles), nil
}
