// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/todo/internal/ports/primary"
)

// TodoAdapter is a thin adapter that translates CLI operations to
// TodoService calls. It depends only on the TodoService interface, enabling
// easy testing with mocks.
type TodoAdapter struct {
	service primary.TodoService
	out     io.Writer
}

// NewTodoAdapter creates a new TodoAdapter with the given service.
func NewTodoAdapter(service primary.TodoService, out io.Writer) *TodoAdapter {
	return &TodoAdapter{
		service: service,
		out:     out,
	}
}

// Add appends a todo to the end of the owner's list.
func (a *TodoAdapter) Add(ctx context.Context, ownerID, title string) error {
	todo, err := a.service.AppendTodo(ctx, primary.AppendTodoRequest{
		OwnerID: ownerID,
		Title:   title,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Added todo %d at position %d: %s\n", todo.ID, todo.Position, todo.Title)
	return nil
}

// List prints the owner's todos ordered by position.
func (a *TodoAdapter) List(ctx context.Context, ownerID string) error {
	todos, err := a.service.ListTodos(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list todos: %w", err)
	}

	if len(todos) == 0 {
		fmt.Fprintln(a.out, "No todos found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-5s %-6s %-5s %s\n", "POS", "ID", "DONE", "TITLE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────")
	for _, t := range todos {
		mark := " "
		if t.Done {
			mark = color.New(color.FgGreen).Sprint("✓")
		}
		fmt.Fprintf(a.out, "%-5d %-6d %-5s %s\n", t.Position, t.ID, mark, t.Title)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Done marks a todo complete (or not, with done=false).
func (a *TodoAdapter) Done(ctx context.Context, ownerID string, todoID int64, done bool) error {
	todo, err := a.service.UpdateTodo(ctx, primary.UpdateTodoRequest{
		OwnerID: ownerID,
		TodoID:  todoID,
		Done:    &done,
	})
	if err != nil {
		return err
	}

	if todo.Done {
		fmt.Fprintf(a.out, "✓ Completed todo %d: %s\n", todo.ID, todo.Title)
	} else {
		fmt.Fprintf(a.out, "✓ Reopened todo %d: %s\n", todo.ID, todo.Title)
	}
	return nil
}

// Retitle changes a todo's title.
func (a *TodoAdapter) Retitle(ctx context.Context, ownerID string, todoID int64, title string) error {
	todo, err := a.service.UpdateTodo(ctx, primary.UpdateTodoRequest{
		OwnerID: ownerID,
		TodoID:  todoID,
		Title:   &title,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Updated todo %d: %s\n", todo.ID, todo.Title)
	return nil
}

// Remove deletes a todo; the positions behind it close up.
func (a *TodoAdapter) Remove(ctx context.Context, ownerID string, todoID int64) error {
	if err := a.service.RemoveTodo(ctx, ownerID, todoID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Removed todo %d\n", todoID)
	return nil
}

// Move relocates one todo to a target position and prints the new order.
func (a *TodoAdapter) Move(ctx context.Context, ownerID string, todoID int64, target int) error {
	todos, err := a.service.MoveTodo(ctx, primary.MoveTodoRequest{
		OwnerID: ownerID,
		TodoID:  todoID,
		Target:  target,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Moved todo %d\n", todoID)
	return a.printOrder(todos)
}

// Reorder applies a batch of (id, position) retargets and prints the new
// order.
func (a *TodoAdapter) Reorder(ctx context.Context, ownerID string, updates []primary.PositionUpdate) error {
	todos, err := a.service.BatchMove(ctx, primary.BatchMoveRequest{
		OwnerID: ownerID,
		Updates: updates,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Reordered %d todos\n", len(updates))
	return a.printOrder(todos)
}

// Normalize runs the standalone dense-position repair.
func (a *TodoAdapter) Normalize(ctx context.Context, ownerID string) error {
	todos, err := a.service.NormalizeTodos(ctx, ownerID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Normalized %d todos\n", len(todos))
	return a.printOrder(todos)
}

func (a *TodoAdapter) printOrder(todos []*primary.Todo) error {
	for _, t := range todos {
		fmt.Fprintf(a.out, "  %d. %s\n", t.Position, t.Title)
	}
	return nil
}

// OwnerAdapter translates CLI operations to OwnerService calls.
type OwnerAdapter struct {
	service primary.OwnerService
	out     io.Writer
}

// NewOwnerAdapter creates a new OwnerAdapter with the given service.
func NewOwnerAdapter(service primary.OwnerService, out io.Writer) *OwnerAdapter {
	return &OwnerAdapter{
		service: service,
		out:     out,
	}
}

// Register mints a new owner identifier.
func (a *OwnerAdapter) Register(ctx context.Context, displayName string) (*primary.Owner, error) {
	owner, err := a.service.RegisterOwner(ctx, displayName)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Registered owner %s: %s\n", owner.ID, owner.DisplayName)
	return owner, nil
}
