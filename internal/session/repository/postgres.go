package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"water-abstraction-admin/internal/session/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the session for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx,
		`SELECT id, data, created_at, updated_at FROM sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.Data, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persists the session to the database. The session must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, data, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Data, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

// Update replaces the session's whole document and bumps updated_at.
// Callers read, mutate a copy, and write back; no partial merge is provided.
func (r *PostgresRepository) Update(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET data = $2, updated_at = $3 WHERE id = $1`,
		s.ID, s.Data, time.Now().UTC(),
	)
	return err
}

// DeleteByID removes the session. Used on journey completion and on cancel.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// DeleteCreatedBefore deletes sessions created before cutoff regardless of
// journey state and returns the deleted row count.
func (r *PostgresRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
