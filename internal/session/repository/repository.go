package repository

import (
	"context"
	"time"

	"water-abstraction-admin/internal/session/domain"
)

// Repository defines persistence for setup sessions.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Create(ctx context.Context, s *domain.Session) error
	Update(ctx context.Context, s *domain.Session) error
	DeleteByID(ctx context.Context, id string) error
	// DeleteCreatedBefore deletes all sessions created before cutoff and
	// returns how many rows were removed. Used by the cleanup sweep.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
