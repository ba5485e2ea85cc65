package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"google.golang.org/api/idtoken"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
)

// GoogleSignInPath is the local page that hosts the Google sign-in button
// and receives its credential.
const GoogleSignInPath = "/auth/google"

// GoogleIdentity signs users in with Google ID tokens and keeps their
// profile in the local user store.
type GoogleIdentity struct {
	users    ports.UserRepository
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleIdentity(users ports.UserRepository, audience string) *GoogleIdentity {
	return &GoogleIdentity{users: users, audience: strings.TrimSpace(audience), validate: idtoken.Validate}
}

func (g *GoogleIdentity) LoginURL(redirectURL string) string {
	if strings.TrimSpace(redirectURL) == "" {
		return GoogleSignInPath
	}
	return GoogleSignInPath + "?" + url.Values{"redirect_url": {redirectURL}}.Encode()
}

// LogoutURL has nothing to sign out of remotely.
func (g *GoogleIdentity) LogoutURL(redirectURL string) string {
	if strings.TrimSpace(redirectURL) == "" {
		return "/"
	}
	return redirectURL
}

func (g *GoogleIdentity) Resolve(ctx context.Context, token string) (*domain.User, error) {
	payload, err := g.validate(ctx, token, g.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrUnauthorized, err)
	}
	email, _ := payload.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: token carries no email", ports.ErrUnauthorized)
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("%w: email not verified", ports.ErrUnauthorized)
	}
	name := claimString(payload.Claims, "name")
	picture := claimString(payload.Claims, "picture")
	return g.users.UpsertByEmail(ctx, email, name, picture)
}

func (g *GoogleIdentity) UpdateMe(ctx context.Context, principal ports.Principal, patch domain.UserPatch) (*domain.User, error) {
	if strings.TrimSpace(principal.UserID) == "" {
		return nil, ports.ErrUnauthorized
	}
	user, err := g.users.UpdateProfile(ctx, principal.UserID, patch)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ports.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

func claimString(claims map[string]interface{}, key string) *string {
	value, _ := claims[key].(string)
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

var _ ports.IdentityProvider = (*GoogleIdentity)(nil)
