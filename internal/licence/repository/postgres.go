package repository

import (
	"context"
	"database/sql"
	"errors"

	"water-abstraction-admin/internal/licence/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a licence repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the licence for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Licence, error) {
	var (
		l       domain.Licence
		expired sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, licence_ref, holder_name, region_id, start_date, expired_date
		 FROM licences WHERE id = $1`, id,
	).Scan(&l.ID, &l.LicenceRef, &l.HolderName, &l.RegionID, &l.StartDate, &expired)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if expired.Valid {
		l.ExpiredDate = &expired.Time
	}
	return &l, nil
}
