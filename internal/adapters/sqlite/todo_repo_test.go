package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/todo/internal/adapters/sqlite"
	"github.com/example/todo/internal/ports/secondary"
)

func TestTodoRepositoryAppend(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")

	first := &secondary.TodoRecord{OwnerID: owner, Title: "first"}
	if err := repo.Append(ctx, first); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if first.Position != 1 {
		t.Errorf("first append position = %d, want 1", first.Position)
	}
	if first.ID == 0 {
		t.Error("append did not write back an id")
	}

	second := &secondary.TodoRecord{OwnerID: owner, Title: "second"}
	if err := repo.Append(ctx, second); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if second.Position != 2 {
		t.Errorf("second append position = %d, want 2", second.Position)
	}

	assertDense(t, database, owner)
}

func TestTodoRepositoryAppendIsPerOwner(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	ownerA := seedOwner(t, database, "owner-a")
	ownerB := seedOwner(t, database, "owner-b")
	seedTodo(t, database, ownerA, "a1", 1)
	seedTodo(t, database, ownerA, "a2", 2)

	rec := &secondary.TodoRecord{OwnerID: ownerB, Title: "b1"}
	if err := repo.Append(ctx, rec); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if rec.Position != 1 {
		t.Errorf("position = %d, want 1 (positions are scoped per owner)", rec.Position)
	}
}

func TestTodoRepositoryGetByID(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")
	id := seedTodo(t, database, owner, "look me up", 1)

	record, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record.Title != "look me up" || record.OwnerID != owner || record.Position != 1 {
		t.Errorf("unexpected record: %+v", record)
	}

	_, err = repo.GetByID(ctx, 9999)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("missing todo error = %v, want ErrNotFound", err)
	}
}

func TestTodoRepositoryListByOwnerOrder(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")
	seedTodo(t, database, owner, "third", 3)
	seedTodo(t, database, owner, "first", 1)
	seedTodo(t, database, owner, "second", 2)

	records, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var titles []string
	for _, r := range records {
		titles = append(titles, r.Title)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("list order = %v, want %v", titles, want)
		}
	}
}

func TestTodoRepositoryUpdate(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")
	id := seedTodo(t, database, owner, "old title", 1)

	err := repo.Update(ctx, &secondary.TodoRecord{ID: id, OwnerID: owner, Title: "new title", Done: true})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	record, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record.Title != "new title" || !record.Done {
		t.Errorf("update not applied: %+v", record)
	}
	if record.CompletedAt == "" {
		t.Error("completing a todo should set completed_at")
	}
	if record.Position != 1 {
		t.Errorf("update changed position to %d", record.Position)
	}
}

func TestTodoRepositoryUpdateWrongOwner(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	ownerA := seedOwner(t, database, "owner-a")
	seedOwner(t, database, "owner-b")
	id := seedTodo(t, database, ownerA, "mine", 1)

	err := repo.Update(ctx, &secondary.TodoRecord{ID: id, OwnerID: "owner-b", Title: "stolen"})
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("cross-owner update error = %v, want ErrNotFound", err)
	}
}

func TestTodoRepositoryDeleteAndCompact(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")
	seedTodo(t, database, owner, "a", 1)
	seedTodo(t, database, owner, "b", 2)
	victim := seedTodo(t, database, owner, "c", 3)
	seedTodo(t, database, owner, "d", 4)
	seedTodo(t, database, owner, "e", 5)

	if err := repo.DeleteAndCompact(ctx, owner, victim, 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got := positionsOf(t, database, owner)
	want := map[string]int{"a": 1, "b": 2, "d": 3, "e": 4}
	for title, pos := range want {
		if got[title] != pos {
			t.Errorf("%s at position %d, want %d", title, got[title], pos)
		}
	}
	if len(got) != 4 {
		t.Errorf("owner has %d todos, want 4", len(got))
	}
	assertDense(t, database, owner)
}

func TestTodoRepositoryDeleteFirstOfLongList(t *testing.T) {
	// Deleting position 1 shifts every other row; this exercises the
	// two-phase negative staging against the live unique constraint.
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")
	victim := seedTodo(t, database, owner, "head", 1)
	for i := 2; i <= 10; i++ {
		seedTodo(t, database, owner, "tail", i)
	}

	if err := repo.DeleteAndCompact(ctx, owner, victim, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	assertDense(t, database, owner)
}

func TestTodoRepositoryDeleteMissing(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")

	err := repo.DeleteAndCompact(ctx, owner, 123, 1)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("missing delete error = %v, want ErrNotFound", err)
	}
}

func TestTodoRepositoryDeleteDoesNotTouchOtherOwners(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	ownerA := seedOwner(t, database, "owner-a")
	ownerB := seedOwner(t, database, "owner-b")
	victim := seedTodo(t, database, ownerA, "a1", 1)
	seedTodo(t, database, ownerA, "a2", 2)
	seedTodo(t, database, ownerB, "b1", 1)
	seedTodo(t, database, ownerB, "b2", 2)

	if err := repo.DeleteAndCompact(ctx, ownerA, victim, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got := positionsOf(t, database, ownerB)
	if got["b1"] != 1 || got["b2"] != 2 {
		t.Errorf("owner B positions disturbed: %v", got)
	}
}

func TestTodoRepositoryReorder(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")
	a := seedTodo(t, database, owner, "a", 1)
	b := seedTodo(t, database, owner, "b", 2)
	c := seedTodo(t, database, owner, "c", 3)

	// Full rotation: every row changes position, which would collide
	// immediately without the negative staging phase.
	if err := repo.Reorder(ctx, owner, []int64{c, a, b}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	got := positionsOf(t, database, owner)
	want := map[string]int{"c": 1, "a": 2, "b": 3}
	for title, pos := range want {
		if got[title] != pos {
			t.Errorf("%s at position %d, want %d", title, got[title], pos)
		}
	}
	assertDense(t, database, owner)
}

func TestTodoRepositoryReorderRejectsPartialCover(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")
	a := seedTodo(t, database, owner, "a", 1)
	seedTodo(t, database, owner, "b", 2)

	if err := repo.Reorder(ctx, owner, []int64{a}); err == nil {
		t.Fatal("partial reorder should fail")
	}

	// Nothing was applied.
	got := positionsOf(t, database, owner)
	if got["a"] != 1 || got["b"] != 2 {
		t.Errorf("positions changed after failed reorder: %v", got)
	}
}

func TestTodoRepositoryReorderRejectsForeignTodo(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	ownerA := seedOwner(t, database, "owner-a")
	ownerB := seedOwner(t, database, "owner-b")
	a := seedTodo(t, database, ownerA, "a", 1)
	foreign := seedTodo(t, database, ownerB, "theirs", 1)
	seedTodo(t, database, ownerA, "b", 2)

	err := repo.Reorder(ctx, ownerA, []int64{foreign, a})
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("foreign reorder error = %v, want ErrNotFound", err)
	}

	// The whole transaction rolled back.
	got := positionsOf(t, database, ownerA)
	if got["a"] != 1 || got["b"] != 2 {
		t.Errorf("positions changed after rejected reorder: %v", got)
	}
	if positionsOf(t, database, ownerB)["theirs"] != 1 {
		t.Error("foreign owner's list was disturbed")
	}
}

func TestTodoRepositoryReorderIdempotent(t *testing.T) {
	database := setupTestDB(t)
	repo := sqlite.NewTodoRepository(database)
	ctx := context.Background()
	owner := seedOwner(t, database, "")
	a := seedTodo(t, database, owner, "a", 1)
	b := seedTodo(t, database, owner, "b", 2)

	for i := 0; i < 2; i++ {
		if err := repo.Reorder(ctx, owner, []int64{b, a}); err != nil {
			t.Fatalf("reorder %d failed: %v", i, err)
		}
	}

	got := positionsOf(t, database, owner)
	if got["b"] != 1 || got["a"] != 2 {
		t.Errorf("repeated reorder drifted: %v", got)
	}
}
