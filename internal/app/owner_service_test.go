package app

import (
	"context"
	"testing"

	"github.com/example/todo/internal/ports/primary"
)

func TestRegisterOwner(t *testing.T) {
	service := NewOwnerService(newMockOwnerRepository())

	owner, err := service.RegisterOwner(context.Background(), "Ada")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if owner.ID == "" {
		t.Error("owner id not assigned")
	}
	if owner.DisplayName != "Ada" {
		t.Errorf("display name = %q, want %q", owner.DisplayName, "Ada")
	}
}

func TestRegisterOwnerIDsAreUnique(t *testing.T) {
	service := NewOwnerService(newMockOwnerRepository())
	ctx := context.Background()

	a, err := service.RegisterOwner(ctx, "first")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	b, err := service.RegisterOwner(ctx, "second")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if a.ID == b.ID {
		t.Errorf("two owners share id %s", a.ID)
	}
}

func TestRegisterOwnerEmptyName(t *testing.T) {
	service := NewOwnerService(newMockOwnerRepository())

	_, err := service.RegisterOwner(context.Background(), "")
	if !primary.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestGetOwnerMissing(t *testing.T) {
	service := NewOwnerService(newMockOwnerRepository())

	_, err := service.GetOwner(context.Background(), "nobody")
	if !primary.IsNotFound(err) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}
