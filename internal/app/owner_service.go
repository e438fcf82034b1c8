package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/todo/internal/ports/primary"
	"github.com/example/todo/internal/ports/secondary"
)

// OwnerServiceImpl implements the OwnerService interface. It only manages the
// opaque identifiers that scope todo lists; credentials and sessions belong
// to the external identity layer.
type OwnerServiceImpl struct {
	ownerRepo secondary.OwnerRepository
}

// NewOwnerService creates a new OwnerService with injected dependencies.
func NewOwnerService(ownerRepo secondary.OwnerRepository) *OwnerServiceImpl {
	return &OwnerServiceImpl{ownerRepo: ownerRepo}
}

// RegisterOwner creates a new owner with a fresh opaque identifier.
func (s *OwnerServiceImpl) RegisterOwner(ctx context.Context, displayName string) (*primary.Owner, error) {
	if displayName == "" {
		return nil, &primary.ValidationError{Reason: "owner display name must not be empty"}
	}

	record := &secondary.OwnerRecord{
		ID:          uuid.NewString(),
		DisplayName: displayName,
	}
	if err := s.ownerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to register owner: %w", err)
	}

	created, err := s.ownerRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registered owner: %w", err)
	}

	return recordToOwner(created), nil
}

// GetOwner retrieves an owner by identifier.
func (s *OwnerServiceImpl) GetOwner(ctx context.Context, ownerID string) (*primary.Owner, error) {
	record, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, &primary.NotFoundError{Reason: fmt.Sprintf("owner %s not found", ownerID)}
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	return recordToOwner(record), nil
}

func recordToOwner(r *secondary.OwnerRecord) *primary.Owner {
	return &primary.Owner{
		ID:          r.ID,
		DisplayName: r.DisplayName,
		CreatedAt:   r.CreatedAt,
	}
}
