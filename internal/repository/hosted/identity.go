package hosted

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
)

// Identity signs users in through the hosted backend's login pages and reads
// or updates the signed-in user with the token it hands back.
type Identity struct {
	client  *Client
	authURL string
	now     func() time.Time
}

func NewIdentity(c *Client, authURL string) *Identity {
	return &Identity{client: c, authURL: strings.TrimRight(strings.TrimSpace(authURL), "/"), now: time.Now}
}

func (i *Identity) LoginURL(redirectURL string) string {
	return i.redirect("/login", redirectURL)
}

func (i *Identity) LogoutURL(redirectURL string) string {
	return i.redirect("/logout", redirectURL)
}

func (i *Identity) redirect(path, redirectURL string) string {
	target := i.authURL + path
	if strings.TrimSpace(redirectURL) == "" {
		return target
	}
	return target + "?" + url.Values{"redirect_url": {redirectURL}}.Encode()
}

func (i *Identity) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ports.ErrUnauthorized
	}
	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := i.client.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if resp.User == nil || resp.User.ID == "" {
		return nil, errors.New("resolve user: empty user in response")
	}
	resp.User.Normalize(i.now())
	return resp.User, nil
}

func (i *Identity) UpdateMe(ctx context.Context, principal ports.Principal, patch domain.UserPatch) (*domain.User, error) {
	token := principal.Token
	if strings.TrimSpace(token) == "" {
		return nil, ports.ErrUnauthorized
	}
	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := i.client.do(ctx, http.MethodPatch, "/api/auth/me", token, patch, &resp); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if resp.User == nil {
		return nil, errors.New("update user: empty user in response")
	}
	resp.User.Normalize(i.now())
	return resp.User, nil
}

var _ ports.IdentityProvider = (*Identity)(nil)
