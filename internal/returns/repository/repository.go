package repository

import (
	"context"

	"water-abstraction-admin/internal/returns/domain"
)

// Repository defines persistence for return versions and their requirements.
type Repository interface {
	// CreateVersion inserts the version, all its requirements and their
	// purpose/point links in one transaction, assigning each requirement a
	// sequential legacy id scoped by its region. Nothing is persisted if any
	// insert fails.
	CreateVersion(ctx context.Context, v *domain.ReturnVersion, reqs []*domain.ReturnRequirement) error
	GetVersionByID(ctx context.Context, id string) (*domain.ReturnVersion, error)
	ListRequirementsByVersion(ctx context.Context, versionID string) ([]*domain.ReturnRequirement, error)
}
