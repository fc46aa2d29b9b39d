package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"water-abstraction-admin/internal/returns/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a return-version repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateVersion writes the version and its requirements atomically. The
// version number is the licence's next, and each requirement's legacy id is
// the region's next; both are assigned inside the transaction so concurrent
// finalizations cannot collide.
func (r *PostgresRepository) CreateVersion(ctx context.Context, v *domain.ReturnVersion, reqs []*domain.ReturnRequirement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin finalization: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM return_versions WHERE licence_id = $1`,
		v.LicenceID,
	).Scan(&v.Version)
	if err != nil {
		return fmt.Errorf("next version number: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO return_versions (id, licence_id, version, status, reason, start_date, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.LicenceID, v.Version, v.Status, v.Reason, v.StartDate,
		sql.NullString{String: v.Notes, Valid: v.Notes != ""}, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return version: %w", err)
	}

	for _, req := range reqs {
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(legacy_id), 0) + 1 FROM return_requirements WHERE region_id = $1`,
			req.RegionID,
		).Scan(&req.LegacyID)
		if err != nil {
			return fmt.Errorf("next legacy id: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO return_requirements
			   (id, return_version_id, region_id, legacy_id, site_description, returns_cycle,
			    frequency_collected, frequency_reported,
			    abstraction_period_start_day, abstraction_period_start_month,
			    abstraction_period_end_day, abstraction_period_end_month,
			    agreements_exceptions, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			req.ID, v.ID, req.RegionID, req.LegacyID, req.SiteDescription, req.ReturnsCycle,
			req.FrequencyCollected, req.FrequencyReported,
			req.AbstractionPeriod.StartDay, req.AbstractionPeriod.StartMonth,
			req.AbstractionPeriod.EndDay, req.AbstractionPeriod.EndMonth,
			pq.Array(req.AgreementsExceptions), req.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert return requirement: %w", err)
		}

		for _, purposeID := range req.PurposeIDs {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO return_requirement_purposes (return_requirement_id, purpose_id) VALUES ($1, $2)`,
				req.ID, purposeID,
			)
			if err != nil {
				return fmt.Errorf("link requirement purpose: %w", err)
			}
		}
		for _, pointID := range req.PointIDs {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO return_requirement_points (return_requirement_id, point_id) VALUES ($1, $2)`,
				req.ID, pointID,
			)
			if err != nil {
				return fmt.Errorf("link requirement point: %w", err)
			}
		}
	}

	return tx.Commit()
}

// GetVersionByID returns the version for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetVersionByID(ctx context.Context, id string) (*domain.ReturnVersion, error) {
	var (
		v     domain.ReturnVersion
		notes sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, licence_id, version, status, reason, start_date, notes, created_at
		 FROM return_versions WHERE id = $1`, id,
	).Scan(&v.ID, &v.LicenceID, &v.Version, &v.Status, &v.Reason, &v.StartDate, &notes, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	v.Notes = notes.String
	return &v, nil
}

// ListRequirementsByVersion returns the version's requirements ordered by legacy id.
func (r *PostgresRepository) ListRequirementsByVersion(ctx context.Context, versionID string) ([]*domain.ReturnRequirement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, return_version_id, region_id, legacy_id, site_description, returns_cycle,
		        frequency_collected, frequency_reported,
		        abstraction_period_start_day, abstraction_period_start_month,
		        abstraction_period_end_day, abstraction_period_end_month,
		        agreements_exceptions, created_at
		 FROM return_requirements WHERE return_version_id = $1 ORDER BY legacy_id`, versionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ReturnRequirement
	for rows.Next() {
		var (
			req        domain.ReturnRequirement
			agreements pq.StringArray
			createdAt  time.Time
		)
		err := rows.Scan(
			&req.ID, &req.ReturnVersionID, &req.RegionID, &req.LegacyID,
			&req.SiteDescription, &req.ReturnsCycle,
			&req.FrequencyCollected, &req.FrequencyReported,
			&req.AbstractionPeriod.StartDay, &req.AbstractionPeriod.StartMonth,
			&req.AbstractionPeriod.EndDay, &req.AbstractionPeriod.EndMonth,
			&agreements, &createdAt,
		)
		if err != nil {
			return nil, err
		}
		req.AgreementsExceptions = agreements
		req.CreatedAt = createdAt
		out = append(out, &req)
	}
	return out, rows.Err()
}
