package todo

import "testing"

func TestCanMutateTodo(t *testing.T) {
	tests := []struct {
		name        string
		ctx         OwnershipContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name: "can mutate own todo",
			ctx: OwnershipContext{
				TodoID:     1,
				OwnerID:    "owner-a",
				ActingID:   "owner-a",
				TodoExists: true,
			},
			wantAllowed: true,
		},
		{
			name: "cannot mutate missing todo",
			ctx: OwnershipContext{
				TodoID:     42,
				ActingID:   "owner-a",
				TodoExists: false,
			},
			wantAllowed: false,
			wantReason:  "todo 42 not found",
		},
		{
			name: "cannot mutate another owner's todo",
			ctx: OwnershipContext{
				TodoID:     7,
				OwnerID:    "owner-b",
				ActingID:   "owner-a",
				TodoExists: true,
			},
			wantAllowed: false,
			wantReason:  "todo 7 does not belong to the acting owner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanMutateTodo(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanCreateTodo(t *testing.T) {
	tests := []struct {
		name        string
		ctx         DraftContext
		wantAllowed bool
	}{
		{
			name:        "title present",
			ctx:         DraftContext{Title: "water the plants"},
			wantAllowed: true,
		},
		{
			name:        "empty title rejected",
			ctx:         DraftContext{Title: ""},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateTodo(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestValidateBatchUpdate(t *testing.T) {
	tests := []struct {
		name        string
		ctx         BatchUpdateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name: "valid batch",
			ctx: BatchUpdateContext{Updates: []BatchUpdateEntry{
				{ID: 1, Position: 2},
				{ID: 2, Position: 1},
			}},
			wantAllowed: true,
		},
		{
			name: "duplicate desired positions are allowed",
			ctx: BatchUpdateContext{Updates: []BatchUpdateEntry{
				{ID: 1, Position: 2},
				{ID: 2, Position: 2},
				{ID: 3, Position: 2},
			}},
			wantAllowed: true,
		},
		{
			name:        "empty batch rejected",
			ctx:         BatchUpdateContext{},
			wantAllowed: false,
			wantReason:  "batch update must contain at least one entry",
		},
		{
			name: "missing id rejected",
			ctx: BatchUpdateContext{Updates: []BatchUpdateEntry{
				{ID: 0, Position: 1},
			}},
			wantAllowed: false,
			wantReason:  "batch entry 0 is missing a todo id",
		},
		{
			name: "zero position rejected",
			ctx: BatchUpdateContext{Updates: []BatchUpdateEntry{
				{ID: 5, Position: 0},
			}},
			wantAllowed: false,
			wantReason:  "batch entry for todo 5 has non-positive position 0",
		},
		{
			name: "negative position rejected",
			ctx: BatchUpdateContext{Updates: []BatchUpdateEntry{
				{ID: 5, Position: -3},
			}},
			wantAllowed: false,
			wantReason:  "batch entry for todo 5 has non-positive position -3",
		},
		{
			name: "duplicate id rejected",
			ctx: BatchUpdateContext{Updates: []BatchUpdateEntry{
				{ID: 5, Position: 1},
				{ID: 5, Position: 2},
			}},
			wantAllowed: false,
			wantReason:  "todo 5 appears more than once in the batch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateBatchUpdate(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}
