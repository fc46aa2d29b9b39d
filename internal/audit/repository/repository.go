package repository

import (
	"context"

	"water-abstraction-admin/internal/audit/domain"
)

// Repository defines persistence for audit logs.
type Repository interface {
	ListByLicence(ctx context.Context, licenceID string, limit, offset int32) ([]*domain.AuditLog, error)
	Create(ctx context.Context, a *domain.AuditLog) error
}
