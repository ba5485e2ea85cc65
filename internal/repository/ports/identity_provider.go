package ports

import (
	"context"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

// Principal identifies the signed-in user towards the identity provider.
// Token is whatever the provider handed back after login; providers that
// keep their own user store may act on UserID alone.
type Principal struct {
	UserID string
	Token  string
}

// IdentityProvider is the external authentication collaborator.
type IdentityProvider interface {
	LoginURL(redirectURL string) string
	LogoutURL(redirectURL string) string
	Resolve(ctx context.Context, token string) (*domain.User, error)
	UpdateMe(ctx context.Context, principal Principal, patch domain.UserPatch) (*domain.User, error)
}
