package ports

import (
	"context"
	"time"
)

// SessionRepository records issued web sessions by token fingerprint so a
// logout can revoke a cookie before it expires.
type SessionRepository interface {
	CreateSession(ctx context.Context, userID, fingerprint string, expiresAt time.Time) error
	DeactivateSession(ctx context.Context, fingerprint string) error
	IsActive(ctx context.Context, fingerprint string, now time.Time) (bool, error)
}
