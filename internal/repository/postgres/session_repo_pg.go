package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, userID, fingerprint string, expiresAt time.Time) error {
	const query = `
        INSERT INTO sessions (user_id, token_fingerprint, expires_at, is_active)
        VALUES ($1, $2, $3, true)
        ON CONFLICT (token_fingerprint) DO UPDATE
        SET expires_at = EXCLUDED.expires_at, is_active = true
    `
	_, err := r.db.ExecContext(ctx, query, userID, fingerprint, expiresAt)
	return err
}

func (r *SessionRepository) DeactivateSession(ctx context.Context, fingerprint string) error {
	const query = `
        UPDATE sessions SET is_active = false, expires_at = NOW()
        WHERE token_fingerprint = $1 AND is_active = true
    `
	_, err := r.db.ExecContext(ctx, query, fingerprint)
	return err
}

func (r *SessionRepository) IsActive(ctx context.Context, fingerprint string, now time.Time) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM sessions
            WHERE token_fingerprint = $1 AND is_active = true AND expires_at > $2
        )
    `
	var active bool
	if err := r.db.GetContext(ctx, &active, query, fingerprint, now); err != nil {
		return false, err
	}
	return active, nil
}
