package repository

import (
	"context"

	"water-abstraction-admin/internal/refdata/domain"
)

// Repository defines read access to the reference-data catalogs the setup
// journey displays and links requirements to.
type Repository interface {
	GetRegionByID(ctx context.Context, id string) (*domain.Region, error)
	ListPurposesForLicence(ctx context.Context, licenceID string) ([]*domain.Purpose, error)
	ListPointsForLicence(ctx context.Context, licenceID string) ([]*domain.Point, error)
}
