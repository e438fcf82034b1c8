// Package todo contains the pure business rules for todo operations.
// Guards are pure functions that evaluate preconditions without side effects.
package todo

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// OwnershipContext provides context for ownership guards.
type OwnershipContext struct {
	TodoID     int64
	OwnerID    string // owner recorded on the todo
	ActingID   string // owner performing the operation
	TodoExists bool
}

// DraftContext provides context for creation guards.
type DraftContext struct {
	Title string
}

// BatchUpdateEntry is one (id, position) pair from a batch request.
type BatchUpdateEntry struct {
	ID       int64
	Position int
}

// BatchUpdateContext provides context for batch validation guards.
type BatchUpdateContext struct {
	Updates []BatchUpdateEntry
}

// CanMutateTodo evaluates whether the acting owner may mutate a todo.
// Rules:
// - Todo must exist
// - Todo must belong to the acting owner
func CanMutateTodo(ctx OwnershipContext) GuardResult {
	if !ctx.TodoExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("todo %d not found", ctx.TodoID),
		}
	}

	if ctx.OwnerID != ctx.ActingID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("todo %d does not belong to the acting owner", ctx.TodoID),
		}
	}

	return GuardResult{Allowed: true}
}

// CanCreateTodo evaluates whether a todo draft is acceptable.
// Rules:
// - Title must not be empty
func CanCreateTodo(ctx DraftContext) GuardResult {
	if ctx.Title == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "todo title must not be empty",
		}
	}

	return GuardResult{Allowed: true}
}

// ValidateBatchUpdate evaluates the shape of a batch move request. This runs
// before any transaction starts; a rejection here means nothing was mutated.
// Rules:
// - Batch must not be empty
// - Every entry needs an id and a positive position
// - No id may appear twice
func ValidateBatchUpdate(ctx BatchUpdateContext) GuardResult {
	if len(ctx.Updates) == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "batch update must contain at least one entry",
		}
	}

	seen := make(map[int64]bool, len(ctx.Updates))
	for i, u := range ctx.Updates {
		if u.ID <= 0 {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("batch entry %d is missing a todo id", i),
			}
		}
		if u.Position <= 0 {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("batch entry for todo %d has non-positive position %d", u.ID, u.Position),
			}
		}
		if seen[u.ID] {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("todo %d appears more than once in the batch", u.ID),
			}
		}
		seen[u.ID] = true
	}

	return GuardResult{Allowed: true}
}
