// Package primary defines the primary ports (driving interfaces) for the
// application: the service surface the CLI and HTTP adapters call into.
package primary

import "context"

// TodoService defines the primary port for todo operations. Every operation
// takes the acting owner explicitly; there is no ambient session state. Each
// mutation runs inside one store transaction and either fully applies (with
// the owner's positions left dense 1..N) or does not apply at all.
type TodoService interface {
	// AppendTodo creates a todo at the end of the owner's list.
	AppendTodo(ctx context.Context, req AppendTodoRequest) (*Todo, error)

	// ListTodos returns the owner's todos ordered by position.
	ListTodos(ctx context.Context, ownerID string) ([]*Todo, error)

	// UpdateTodo changes a todo's title and/or done flag. Positions are
	// untouched.
	UpdateTodo(ctx context.Context, req UpdateTodoRequest) (*Todo, error)

	// RemoveTodo deletes a todo and compacts the positions behind it.
	RemoveTodo(ctx context.Context, ownerID string, todoID int64) error

	// MoveTodo moves one todo to a target position with list-splice
	// semantics and returns the full reordered list.
	MoveTodo(ctx context.Context, req MoveTodoRequest) ([]*Todo, error)

	// BatchMove retargets several todos at once, resolving position
	// collisions first-fit ascending, and returns the full reordered list.
	BatchMove(ctx context.Context, req BatchMoveRequest) ([]*Todo, error)

	// NormalizeTodos reassigns dense positions 1..N ordered by the current
	// (position, id). Idempotent; usable as a standalone repair.
	NormalizeTodos(ctx context.Context, ownerID string) ([]*Todo, error)
}

// OwnerService defines the primary port for owner registry operations.
// Authentication is out of scope; this only mints and lists the opaque
// identifiers that scope todo lists.
type OwnerService interface {
	// RegisterOwner creates a new owner with a fresh opaque identifier.
	RegisterOwner(ctx context.Context, displayName string) (*Owner, error)

	// GetOwner retrieves an owner by identifier.
	GetOwner(ctx context.Context, ownerID string) (*Owner, error)
}

// Todo is the service-level view of a todo item.
type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Done        bool   `json:"done"`
	Position    int    `json:"position"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// Owner is the service-level view of a registered owner.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
}

// AppendTodoRequest contains parameters for creating a todo.
type AppendTodoRequest struct {
	OwnerID string
	Title   string
}

// UpdateTodoRequest contains parameters for updating a todo's fields.
// Nil pointers mean "leave unchanged".
type UpdateTodoRequest struct {
	OwnerID string
	TodoID  int64
	Title   *string
	Done    *bool
}

// MoveTodoRequest contains parameters for a single-item move. Target is
// 1-based and clamped internally to [1, N].
type MoveTodoRequest struct {
	OwnerID string
	TodoID  int64
	Target  int
}

// PositionUpdate is one (id, desired position) pair in a batch move.
type PositionUpdate struct {
	ID       int64 `json:"id"`
	Position int   `json:"position"`
}

// BatchMoveRequest contains parameters for a batch move.
type BatchMoveRequest struct {
	OwnerID string
	Updates []PositionUpdate
}
