// Package app contains the application services implementing the primary
// ports. Services orchestrate guards, the pure ordering core, and the
// repositories; they hold no state of their own and take the acting owner
// explicitly on every call.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/todo/internal/core/ordering"
	coretodo "github.com/example/todo/internal/core/todo"
	"github.com/example/todo/internal/ports/primary"
	"github.com/example/todo/internal/ports/secondary"
)

// TodoServiceImpl implements the TodoService interface.
type TodoServiceImpl struct {
	todoRepo  secondary.TodoRepository
	ownerRepo secondary.OwnerRepository
}

// NewTodoService creates a new TodoService with injected dependencies.
func NewTodoService(todoRepo secondary.TodoRepository, ownerRepo secondary.OwnerRepository) *TodoServiceImpl {
	return &TodoServiceImpl{
		todoRepo:  todoRepo,
		ownerRepo: ownerRepo,
	}
}

// AppendTodo creates a todo at the end of the owner's list.
func (s *TodoServiceImpl) AppendTodo(ctx context.Context, req primary.AppendTodoRequest) (*primary.Todo, error) {
	if guard := coretodo.CanCreateTodo(coretodo.DraftContext{Title: req.Title}); !guard.Allowed {
		return nil, &primary.ValidationError{Reason: guard.Reason}
	}

	if _, err := s.ownerRepo.GetByID(ctx, req.OwnerID); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, &primary.NotFoundError{Reason: fmt.Sprintf("owner %s not found", req.OwnerID)}
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	record := &secondary.TodoRecord{
		OwnerID: req.OwnerID,
		Title:   req.Title,
	}
	if err := s.todoRepo.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append todo: %w", err)
	}

	created, err := s.todoRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created todo: %w", err)
	}

	return recordToTodo(created), nil
}

// ListTodos returns the owner's todos ordered by position.
func (s *TodoServiceImpl) ListTodos(ctx context.Context, ownerID string) ([]*primary.Todo, error) {
	records, err := s.todoRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return recordsToTodos(records), nil
}

// UpdateTodo changes a todo's title and/or done flag.
func (s *TodoServiceImpl) UpdateTodo(ctx context.Context, req primary.UpdateTodoRequest) (*primary.Todo, error) {
	record, err := s.authorize(ctx, req.OwnerID, req.TodoID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if guard := coretodo.CanCreateTodo(coretodo.DraftContext{Title: *req.Title}); !guard.Allowed {
			return nil, &primary.ValidationError{Reason: guard.Reason}
		}
		record.Title = *req.Title
	}
	if req.Done != nil {
		record.Done = *req.Done
	}

	if err := s.todoRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	updated, err := s.todoRepo.GetByID(ctx, req.TodoID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated todo: %w", err)
	}

	return recordToTodo(updated), nil
}

// RemoveTodo deletes a todo. The deletion and the position compaction behind
// it run in the same store transaction.
func (s *TodoServiceImpl) RemoveTodo(ctx context.Context, ownerID string, todoID int64) error {
	record, err := s.authorize(ctx, ownerID, todoID)
	if err != nil {
		return err
	}

	if err := s.todoRepo.DeleteAndCompact(ctx, ownerID, todoID, record.Position); err != nil {
		return fmt.Errorf("failed to remove todo: %w", err)
	}
	return nil
}

// MoveTodo moves one todo to a target position with list-splice semantics:
// the item is pulled out of the sequence and re-inserted, shifting everything
// between old and new position by one. Target is clamped to [1, N]. Moving a
// todo onto its current position is a no-op.
func (s *TodoServiceImpl) MoveTodo(ctx context.Context, req primary.MoveTodoRequest) ([]*primary.Todo, error) {
	if _, err := s.authorize(ctx, req.OwnerID, req.TodoID); err != nil {
		return nil, err
	}

	records, err := s.todoRepo.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	old := 0
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.ID
		if r.ID == req.TodoID {
			old = i + 1
		}
	}

	target := ordering.Clamp(req.Target, len(ids))
	if target == old {
		return recordsToTodos(records), nil
	}

	if err := s.todoRepo.Reorder(ctx, req.OwnerID, ordering.SpliceMove(ids, old, target)); err != nil {
		return nil, fmt.Errorf("failed to reorder todos: %w", err)
	}

	return s.ListTodos(ctx, req.OwnerID)
}

// BatchMove retargets several todos in one atomic operation. Desired
// positions are untrusted: collisions resolve first-fit ascending with stable
// tie-break on the request order, then the whole list is normalized back to
// dense 1..N. Any entry referencing a todo outside the acting owner's list
// rejects the entire batch before anything is written.
func (s *TodoServiceImpl) BatchMove(ctx context.Context, req primary.BatchMoveRequest) ([]*primary.Todo, error) {
	entries := make([]coretodo.BatchUpdateEntry, len(req.Updates))
	for i, u := range req.Updates {
		entries[i] = coretodo.BatchUpdateEntry{ID: u.ID, Position: u.Position}
	}
	if guard := coretodo.ValidateBatchUpdate(coretodo.BatchUpdateContext{Updates: entries}); !guard.Allowed {
		return nil, &primary.ValidationError{Reason: guard.Reason}
	}

	records, err := s.todoRepo.ListByOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	owned := make(map[int64]bool, len(records))
	current := make([]ordering.Ranked, len(records))
	for i, r := range records {
		owned[r.ID] = true
		current[i] = ordering.Ranked{ID: r.ID, Position: r.Position}
	}

	batch := make([]ordering.BatchEntry, len(req.Updates))
	for i, u := range req.Updates {
		if !owned[u.ID] {
			return nil, &primary.AuthorizationError{
				Reason: fmt.Sprintf("todo %d does not belong to the acting owner", u.ID),
			}
		}
		batch[i] = ordering.BatchEntry{ID: u.ID, Desired: u.Position}
	}

	if err := s.todoRepo.Reorder(ctx, req.OwnerID, ordering.ResolveBatch(current, batch)); err != nil {
		return nil, fmt.Errorf("failed to reorder todos: %w", err)
	}

	return s.ListTodos(ctx, req.OwnerID)
}

// NormalizeTodos reassigns dense positions 1..N ordered by the current
// (position, id). On a healthy list this is a no-op rewrite; it exists as a
// standalone repair for lists imported from elsewhere.
func (s *TodoServiceImpl) NormalizeTodos(ctx context.Context, ownerID string) ([]*primary.Todo, error) {
	records, err := s.todoRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if len(records) == 0 {
		return []*primary.Todo{}, nil
	}

	ranked := make([]ordering.Ranked, len(records))
	for i, r := range records {
		ranked[i] = ordering.Ranked{ID: r.ID, Position: r.Position}
	}

	if err := s.todoRepo.Reorder(ctx, ownerID, ordering.Rank(ranked)); err != nil {
		return nil, fmt.Errorf("failed to normalize todos: %w", err)
	}

	return s.ListTodos(ctx, ownerID)
}

// authorize loads a todo and verifies it belongs to the acting owner. This
// runs before every mutating operation; a failure here means nothing has been
// written.
func (s *TodoServiceImpl) authorize(ctx context.Context, ownerID string, todoID int64) (*secondary.TodoRecord, error) {
	record, err := s.todoRepo.GetByID(ctx, todoID)
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	guardCtx := coretodo.OwnershipContext{
		TodoID:     todoID,
		ActingID:   ownerID,
		TodoExists: record != nil,
	}
	if record != nil {
		guardCtx.OwnerID = record.OwnerID
	}

	if guard := coretodo.CanMutateTodo(guardCtx); !guard.Allowed {
		if !guardCtx.TodoExists {
			return nil, &primary.NotFoundError{Reason: guard.Reason}
		}
		return nil, &primary.AuthorizationError{Reason: guard.Reason}
	}

	return record, nil
}

// recordToTodo converts a persistence record to the service-level view.
func recordToTodo(r *secondary.TodoRecord) *primary.Todo {
	return &primary.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Done:        r.Done,
		Position:    r.Position,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CompletedAt: r.CompletedAt,
	}
}

func recordsToTodos(records []*secondary.TodoRecord) []*primary.Todo {
	todos := make([]*primary.Todo, len(records))
	for i, r := range records {
		todos[i] = recordToTodo(r)
	}
	return todos
}
