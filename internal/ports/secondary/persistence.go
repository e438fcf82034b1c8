// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// the position store.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a record does not exist.
// Callers match it with errors.Is.
var ErrNotFound = errors.New("record not found")

// TodoRepository defines the secondary port for todo persistence. The
// backing store enforces UNIQUE(owner_id, position) at all times, so every
// multi-row position write goes through a disjoint temporary range inside a
// single transaction.
type TodoRepository interface {
	// Append persists a new todo at position max(position)+1 for its owner
	// (1 for an empty list), in one transaction. The assigned ID and
	// position are written back into rec.
	Append(ctx context.Context, rec *TodoRecord) error

	// GetByID retrieves a todo by its ID. Returns ErrNotFound if missing.
	GetByID(ctx context.Context, id int64) (*TodoRecord, error)

	// ListByOwner retrieves an owner's todos ordered by (position, id).
	ListByOwner(ctx context.Context, ownerID string) ([]*TodoRecord, error)

	// Update persists title/done changes for a todo. Position is untouched.
	Update(ctx context.Context, rec *TodoRecord) error

	// DeleteAndCompact removes a todo and decrements the position of every
	// remaining todo of the same owner ranked after it, in one transaction.
	DeleteAndCompact(ctx context.Context, ownerID string, id int64, position int) error

	// Reorder assigns dense positions 1..N to orderedIDs, which must be
	// exactly the owner's todo IDs. All writes happen in one transaction,
	// staged through a negative range so the live uniqueness constraint is
	// never violated. Any ID not owned by ownerID aborts the whole
	// transaction.
	Reorder(ctx context.Context, ownerID string, orderedIDs []int64) error
}

// OwnerRepository defines the secondary port for the owner registry.
type OwnerRepository interface {
	// Create persists a new owner.
	Create(ctx context.Context, rec *OwnerRecord) error

	// GetByID retrieves an owner by ID. Returns ErrNotFound if missing.
	GetByID(ctx context.Context, id string) (*OwnerRecord, error)
}

// TodoRecord represents a todo as stored in persistence.
type TodoRecord struct {
	ID          int64
	OwnerID     string
	Title       string
	Done        bool
	Position    int
	CreatedAt   string
	UpdatedAt   string
	CompletedAt string
}

// OwnerRecord represents an owner as stored in persistence.
type OwnerRecord struct {
	ID          string
	DisplayName string
	CreatedAt   string
}
