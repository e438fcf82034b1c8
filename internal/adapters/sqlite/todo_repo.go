// Package sqlite contains SQLite implementations of repository interfaces.
//
// The todos table carries a live UNIQUE(owner_id, position) constraint, so
// every rewrite that touches more than one row's position runs in two phases
// inside one transaction: rows are first parked on a disjoint strictly
// negative range, then assigned their final dense positive positions. The
// constraint is never violated, not even transiently.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/todo/internal/ports/secondary"
)

// TodoRepository implements secondary.TodoRepository with SQLite.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new SQLite todo repository.
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// scanTodo scans a todo row into a TodoRecord.
func scanTodo(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TodoRecord, error) {
	var (
		done        bool
		createdAt   time.Time
		updatedAt   time.Time
		completedAt sql.NullTime
	)

	record := &secondary.TodoRecord{}
	err := scanner.Scan(
		&record.ID, &record.OwnerID, &record.Title, &done, &record.Position,
		&createdAt, &updatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Done = done
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

const todoSelectCols = "id, owner_id, title, done, position, created_at, updated_at, completed_at"

// Append persists a new todo at the end of its owner's list. The position is
// assigned inside the same transaction that inserts the row, so two appends
// can never race into the same slot.
func (r *TodoRepository) Append(ctx context.Context, rec *secondary.TodoRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin append: %w", err)
	}
	defer tx.Rollback()

	var next int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), 0) + 1 FROM todos WHERE owner_id = ?",
		rec.OwnerID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to compute next position: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"INSERT INTO todos (owner_id, title, done, position) VALUES (?, ?, 0, ?)",
		rec.OwnerID, rec.Title, next,
	)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read todo id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit append: %w", err)
	}

	rec.ID = id
	rec.Position = next
	return nil
}

// GetByID retrieves a todo by its ID.
func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*secondary.TodoRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+todoSelectCols+" FROM todos WHERE id = ?",
		id,
	)

	record, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("todo %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return record, nil
}

// ListByOwner retrieves an owner's todos ordered by (position, id). The ID
// tie-break matters only mid-repair; committed states are always dense.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*secondary.TodoRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+todoSelectCols+" FROM todos WHERE owner_id = ? ORDER BY position, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TodoRecord
	for rows.Next() {
		record, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return records, nil
}

// Update persists title/done changes. Position is deliberately not part of
// this statement; position changes only flow through Reorder and
// DeleteAndCompact.
func (r *TodoRepository) Update(ctx context.Context, rec *secondary.TodoRecord) error {
	var completedAt any
	if rec.Done {
		completedAt = time.Now().Format(time.RFC3339)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE todos SET title = ?, done = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?",
		rec.Title, rec.Done, completedAt, rec.ID, rec.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", rec.ID, secondary.ErrNotFound)
	}

	return nil
}

// DeleteAndCompact removes a todo and closes the gap it leaves: every
// remaining todo of the same owner with position > p moves down by one.
// The decrement runs through the negative range because SQLite checks the
// unique constraint per row, and a plain "position = position - 1" over
// several rows can transiently collide depending on update order.
func (r *TodoRepository) DeleteAndCompact(ctx context.Context, ownerID string, id int64, position int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"DELETE FROM todos WHERE id = ? AND owner_id = ?",
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("todo %d: %w", id, secondary.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE todos SET position = -(position - 1) WHERE owner_id = ? AND position > ?",
		ownerID, position,
	)
	if err != nil {
		return fmt.Errorf("failed to stage compaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE todos SET position = -position WHERE owner_id = ? AND position < 0",
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish compaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}

// Reorder assigns dense positions 1..N following orderedIDs, which must cover
// exactly the owner's todos. Phase one parks every row on a distinct negative
// position; phase two writes the final positive positions. An ID that does
// not belong to the owner aborts the whole transaction, leaving the list
// untouched.
func (r *TodoRepository) Reorder(ctx context.Context, ownerID string, orderedIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM todos WHERE owner_id = ?",
		ownerID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count todos: %w", err)
	}
	if count != len(orderedIDs) {
		return fmt.Errorf("reorder covers %d todos but owner has %d", len(orderedIDs), count)
	}

	stage, err := tx.PrepareContext(ctx,
		"UPDATE todos SET position = ? WHERE id = ? AND owner_id = ?",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare staging update: %w", err)
	}
	defer stage.Close()

	for i, id := range orderedIDs {
		result, err := stage.ExecContext(ctx, -(i + 1), id, ownerID)
		if err != nil {
			return fmt.Errorf("failed to stage todo %d: %w", id, err)
		}
		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			return fmt.Errorf("todo %d does not belong to owner: %w", id, secondary.ErrNotFound)
		}
	}

	assign, err := tx.PrepareContext(ctx,
		"UPDATE todos SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare final update: %w", err)
	}
	defer assign.Close()

	for i, id := range orderedIDs {
		if _, err := assign.ExecContext(ctx, i+1, id, ownerID); err != nil {
			return fmt.Errorf("failed to position todo %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	return nil
}
