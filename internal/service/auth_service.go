package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/media"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

var (
	ErrUnauthenticated   = errors.New("not signed in")
	ErrInvalidLoginToken = errors.New("invalid login token")
	ErrProfileValidation = errors.New("profile validation failed")
	ErrAvatarValidation  = errors.New("avatar validation failed")
	ErrAvatarUnavailable = errors.New("avatar storage not configured")
)

const (
	maxDisplayNameLength  = 80
	defaultAvatarMaxBytes = int64(2 * 1024 * 1024)
)

var defaultAvatarMIMEs = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type AuthServiceConfig struct {
	AvatarBucket     string
	AvatarMaxBytes   int64
	AllowedMIMETypes []string
	ImageProcessor   media.Processor
}

// AuthService owns every Session: it signs visitors in and out, restores
// them from the session cookie and applies profile changes.
type AuthService struct {
	identity ports.IdentityProvider
	tokens   *util.JWTManager
	sessions ports.SessionRepository
	storage  ports.ObjectStorage

	avatarBucket   string
	avatarMaxBytes int64
	allowedMIMEs   map[string]struct{}
	processor      media.Processor
	now            func() time.Time
}

// NewAuthService wires the identity provider and cookie signer. sessions and
// storage are optional: without sessions a cookie is valid until it expires,
// without storage avatar uploads are rejected.
func NewAuthService(identity ports.IdentityProvider, tokens *util.JWTManager, sessions ports.SessionRepository, storage ports.ObjectStorage, cfg AuthServiceConfig) *AuthService {
	maxBytes := cfg.AvatarMaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultAvatarMaxBytes
	}
	allowed := cfg.AllowedMIMETypes
	if len(allowed) == 0 {
		allowed = defaultAvatarMIMEs
	}
	mimeSet := make(map[string]struct{}, len(allowed))
	for _, mt := range allowed {
		mimeSet[strings.ToLower(strings.TrimSpace(mt))] = struct{}{}
	}
	return &AuthService{
		identity:       identity,
		tokens:         tokens,
		sessions:       sessions,
		storage:        storage,
		avatarBucket:   strings.TrimSpace(cfg.AvatarBucket),
		avatarMaxBytes: maxBytes,
		allowedMIMEs:   mimeSet,
		processor:      cfg.ImageProcessor,
		now:            time.Now,
	}
}

func (s *AuthService) LoginURL(redirectURL string) string {
	return s.identity.LoginURL(redirectURL)
}

func (s *AuthService) LogoutURL(redirectURL string) string {
	return s.identity.LogoutURL(redirectURL)
}

// CompleteLogin resolves the token handed back by the identity provider,
// signs the session in and returns the cookie value to set.
func (s *AuthService) CompleteLogin(ctx context.Context, session *Session, loginToken string) (string, time.Time, error) {
	loginToken = strings.TrimSpace(loginToken)
	if loginToken == "" {
		return "", time.Time{}, ErrInvalidLoginToken
	}
	user, err := s.identity.Resolve(ctx, loginToken)
	if err != nil {
		session.signOut()
		if errors.Is(err, ports.ErrUnauthorized) {
			return "", time.Time{}, fmt.Errorf("%w: %v", ErrInvalidLoginToken, err)
		}
		return "", time.Time{}, err
	}
	user.Normalize(s.now())

	cookie, expiresAt, err := s.issue(user, loginToken)
	if err != nil {
		return "", time.Time{}, err
	}
	if s.sessions != nil {
		if err := s.sessions.CreateSession(ctx, user.ID, util.Fingerprint(cookie), expiresAt); err != nil {
			return "", time.Time{}, fmt.Errorf("record session: %w", err)
		}
	}
	session.signIn(user, loginToken)
	return cookie, expiresAt, nil
}

// Restore signs the session in from a cookie value. Any failure leaves the
// session signed out and returns ErrUnauthenticated.
func (s *AuthService) Restore(ctx context.Context, session *Session, cookie string) error {
	if strings.TrimSpace(cookie) == "" {
		session.signOut()
		return ErrUnauthenticated
	}
	claims, err := s.tokens.Parse(cookie)
	if err != nil {
		session.signOut()
		return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if s.sessions != nil {
		active, err := s.sessions.IsActive(ctx, util.Fingerprint(cookie), s.now())
		if err != nil {
			session.signOut()
			return fmt.Errorf("check session: %w", err)
		}
		if !active {
			session.signOut()
			return fmt.Errorf("%w: session revoked", ErrUnauthenticated)
		}
	}
	user := userFromClaims(claims)
	user.Normalize(s.now())
	session.signIn(user, claims.ProviderToken)
	return nil
}

// Reissue signs a fresh cookie for the current session state.
func (s *AuthService) Reissue(ctx context.Context, session *Session, previous string) (string, time.Time, error) {
	state := session.State()
	if !state.IsAuthenticated || state.User == nil {
		return "", time.Time{}, ErrUnauthenticated
	}
	_, providerToken := session.principal()
	cookie, expiresAt, err := s.issue(state.User, providerToken)
	if err != nil {
		return "", time.Time{}, err
	}
	if s.sessions != nil {
		if err := s.sessions.CreateSession(ctx, state.User.ID, util.Fingerprint(cookie), expiresAt); err != nil {
			return "", time.Time{}, fmt.Errorf("record session: %w", err)
		}
		if previous != "" {
			if err := s.sessions.DeactivateSession(ctx, util.Fingerprint(previous)); err != nil {
				log.Printf("auth: deactivate previous session %s: %v", util.ShortFingerprint(previous), err)
			}
		}
	}
	return cookie, expiresAt, nil
}

// Logout revokes the cookie (when sessions are recorded) and signs the
// session out. The session is signed out even when revocation fails.
func (s *AuthService) Logout(ctx context.Context, session *Session, cookie string) error {
	defer session.signOut()
	if s.sessions == nil || strings.TrimSpace(cookie) == "" {
		return nil
	}
	if err := s.sessions.DeactivateSession(ctx, util.Fingerprint(cookie)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// UpdateMe applies patch to the signed-in user and notifies the session's
// subscribers with the updated user.
func (s *AuthService) UpdateMe(ctx context.Context, session *Session, patch domain.UserPatch) (*domain.User, error) {
	if !session.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if patch.DisplayName != nil {
		name := strings.TrimSpace(*patch.DisplayName)
		if name == "" || utf8.RuneCountInString(name) > maxDisplayNameLength {
			return nil, fmt.Errorf("%w: display name must be 1-%d characters", ErrProfileValidation, maxDisplayNameLength)
		}
		patch.DisplayName = &name
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrProfileValidation)
	}

	userID, providerToken := session.principal()
	user, err := s.identity.UpdateMe(ctx, ports.Principal{UserID: userID, Token: providerToken}, patch)
	if err != nil {
		if errors.Is(err, ports.ErrUnauthorized) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	user.Normalize(s.now())
	session.signIn(user, providerToken)
	return session.User(), nil
}

// UploadAvatar processes the image, stores it and points the user's avatar at
// it. The stored object is removed again when the profile update fails.
func (s *AuthService) UploadAvatar(ctx context.Context, session *Session, upload media.Upload) (*domain.User, error) {
	if !session.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if s.storage == nil || s.avatarBucket == "" {
		return nil, ErrAvatarUnavailable
	}
	if err := s.validateAvatar(upload); err != nil {
		return nil, err
	}

	reader, size, contentType, err := prepareImageForUpload(ctx, s.processor, upload, media.AvatarSpec())
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return nil, fmt.Errorf("%w: %v", ErrAvatarValidation, err)
		}
		return nil, fmt.Errorf("process avatar: %w", err)
	}

	userID, _ := session.principal()
	objectName := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), media.ExtensionFor(contentType))
	url, err := s.storage.Upload(ctx, s.avatarBucket, objectName, contentType, reader, size)
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	user, err := s.UpdateMe(ctx, session, domain.UserPatch{Avatar: &url})
	if err != nil {
		if rmErr := s.storage.Remove(ctx, s.avatarBucket, objectName); rmErr != nil {
			log.Printf("auth: remove orphaned avatar %s: %v", objectName, rmErr)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) validateAvatar(upload media.Upload) error {
	if upload.Reader == nil || upload.Size == 0 {
		return fmt.Errorf("%w: empty file", ErrAvatarValidation)
	}
	if upload.Size > s.avatarMaxBytes {
		return fmt.Errorf("%w: file exceeds %d bytes", ErrAvatarValidation, s.avatarMaxBytes)
	}
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if _, ok := s.allowedMIMEs[contentType]; !ok {
		return fmt.Errorf("%w: unsupported content type %q", ErrAvatarValidation, upload.ContentType)
	}
	return nil
}

func (s *AuthService) issue(user *domain.User, providerToken string) (string, time.Time, error) {
	return s.tokens.Generate(util.SessionClaims{
		UserID:        user.ID,
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		Role:          string(user.Role),
		Avatar:        user.Avatar,
		ProviderToken: providerToken,
	})
}

func userFromClaims(claims *util.SessionClaims) *domain.User {
	user := &domain.User{
		ID:          claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        domain.Role(claims.Role),
		Avatar:      claims.Avatar,
	}
	if claims.IssuedAt != nil {
		user.UpdatedAt = claims.IssuedAt.Time
	}
	return user
}
