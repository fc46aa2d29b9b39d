package repository

import (
	"context"
	"database/sql"
	"errors"

	"water-abstraction-admin/internal/refdata/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a reference-data repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetRegionByID returns the region for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetRegionByID(ctx context.Context, id string) (*domain.Region, error) {
	var reg domain.Region
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, nald_region_id FROM regions WHERE id = $1`, id,
	).Scan(&reg.ID, &reg.Name, &reg.NALDRegionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}

// ListPurposesForLicence returns the purposes linked to the licence, ordered by description.
func (r *PostgresRepository) ListPurposesForLicence(ctx context.Context, licenceID string) ([]*domain.Purpose, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.description
		 FROM purposes p
		 JOIN licence_purposes lp ON lp.purpose_id = p.id
		 WHERE lp.licence_id = $1
		 ORDER BY p.description`, licenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Purpose
	for rows.Next() {
		var p domain.Purpose
		if err := rows.Scan(&p.ID, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ListPointsForLicence returns the abstraction points linked to the licence.
func (r *PostgresRepository) ListPointsForLicence(ctx context.Context, licenceID string) ([]*domain.Point, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT pt.id, COALESCE(pt.description, ''), pt.ngr_1,
		        COALESCE(pt.ngr_2, ''), COALESCE(pt.ngr_3, ''), COALESCE(pt.ngr_4, '')
		 FROM points pt
		 JOIN licence_points lp ON lp.point_id = pt.id
		 WHERE lp.licence_id = $1
		 ORDER BY pt.ngr_1`, licenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Point
	for rows.Next() {
		var p domain.Point
		if err := rows.Scan(&p.ID, &p.Description, &p.NGR1, &p.NGR2, &p.NGR3, &p.NGR4); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
