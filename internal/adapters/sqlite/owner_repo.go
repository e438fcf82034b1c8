package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/todo/internal/ports/secondary"
)

// OwnerRepository implements secondary.OwnerRepository with SQLite.
type OwnerRepository struct {
	db *sql.DB
}

// NewOwnerRepository creates a new SQLite owner repository.
func NewOwnerRepository(db *sql.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// Create persists a new owner.
func (r *OwnerRepository) Create(ctx context.Context, rec *secondary.OwnerRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO owners (id, display_name) VALUES (?, ?)",
		rec.ID, rec.DisplayName,
	)
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}
	return nil
}

// GetByID retrieves an owner by its ID.
func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*secondary.OwnerRecord, error) {
	var createdAt time.Time
	record := &secondary.OwnerRecord{}

	err := r.db.QueryRowContext(ctx,
		"SELECT id, display_name, created_at FROM owners WHERE id = ?",
		id,
	).Scan(&record.ID, &record.DisplayName, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("owner %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}
