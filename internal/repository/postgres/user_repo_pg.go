package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
)

const userColumns = "id, email, display_name, role, avatar, created_at, updated_at"

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) UpsertByEmail(ctx context.Context, email string, displayName *string, avatar *string) (*domain.User, error) {
	const query = `
        INSERT INTO users (id, email, display_name, avatar, role)
        VALUES ($1, $2, COALESCE(NULLIF($3, ''), $2), $4, 'customer')
        ON CONFLICT (email) DO UPDATE
        SET display_name = CASE
                WHEN users.display_name = '' OR users.display_name = users.email
                THEN COALESCE(NULLIF(EXCLUDED.display_name, ''), users.display_name)
                ELSE users.display_name
            END,
            avatar = COALESCE(users.avatar, EXCLUDED.avatar),
            updated_at = NOW()
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, "user_"+uuid.NewString(), email, displayName, avatar)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	const query = `
        UPDATE users
        SET display_name = COALESCE($2, display_name),
            avatar = COALESCE($3, avatar),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, id, patch.DisplayName, patch.Avatar)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
