package ports

import (
	"context"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

type UserRepository interface {
	UpsertByEmail(ctx context.Context, email string, displayName *string, avatar *string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
}
