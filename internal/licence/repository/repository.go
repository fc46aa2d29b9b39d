package repository

import (
	"context"

	"water-abstraction-admin/internal/licence/domain"
)

// Repository defines read access to licences.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Licence, error)
}
