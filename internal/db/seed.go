package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeedFixtures populates the database with development fixtures: one demo
// owner with a short ordered list. Returns the demo owner's ID.
func SeedFixtures(database *sql.DB) (string, error) {
	now := time.Now().Format(time.RFC3339)

	ownerID := uuid.NewString()
	if _, err := database.Exec(
		"INSERT INTO owners (id, display_name, created_at) VALUES (?, ?, ?)",
		ownerID, "demo", now,
	); err != nil {
		return "", fmt.Errorf("seed owner: %w", err)
	}

	titles := []string{
		"Buy groceries",
		"Renew passport",
		"Write weekly review",
		"Fix the bike light",
		"Call the dentist",
	}
	for i, title := range titles {
		if _, err := database.Exec(
			"INSERT INTO todos (owner_id, title, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			ownerID, title, i+1, now, now,
		); err != nil {
			return "", fmt.Errorf("seed todos: %w", err)
		}
	}

	return ownerID, nil
}
