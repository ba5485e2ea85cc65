package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
)

type memoryTripRepo struct {
	mu      sync.Mutex
	created []domain.TripRequest
	records []domain.TripRequest
	queries []domain.ListQuery
	listErr error
	saveErr error
}

func (r *memoryTripRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.TripRequest(nil), r.records...), nil
}

func (r *memoryTripRepo) Create(ctx context.Context, trip *domain.TripRequest) (*domain.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.created = append(r.created, *trip)
	saved := *trip
	return &saved, nil
}

type memoryBookingRepo struct {
	records []domain.Booking
	queries []domain.ListQuery
	listErr error
}

func (r *memoryBookingRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.Booking, error) {
	r.queries = append(r.queries, q)
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Booking(nil), r.records...), nil
}

type memoryDestinationRepo struct {
	records []domain.Destination
	last    domain.ListQuery
	err     error
}

func (r *memoryDestinationRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.Destination, error) {
	r.last = q
	return r.records, r.err
}

type memoryActivityRepo struct {
	records []domain.ActivityType
	last    domain.ListQuery
	err     error
}

func (r *memoryActivityRepo) List(ctx context.Context, q domain.ListQuery) ([]domain.ActivityType, error) {
	r.last = q
	return r.records, r.err
}

type fakeIdentity struct {
	users       map[string]*domain.User
	resolveErr  error
	updateErr   error
	lastPatch   domain.UserPatch
	lastPrinc   ports.Principal
	updateCalls int
}

func (f *fakeIdentity) LoginURL(redirectURL string) string {
	return "https://auth.test/login?redirect_url=" + redirectURL
}

func (f *fakeIdentity) LogoutURL(redirectURL string) string {
	return "https://auth.test/logout?redirect_url=" + redirectURL
}

func (f *fakeIdentity) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	user, ok := f.users[token]
	if !ok {
		return nil, ports.ErrUnauthorized
	}
	copied := *user
	return &copied, nil
}

func (f *fakeIdentity) UpdateMe(ctx context.Context, principal ports.Principal, patch domain.UserPatch) (*domain.User, error) {
	f.updateCalls++
	f.lastPatch = patch
	f.lastPrinc = principal
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	user, ok := f.users[principal.Token]
	if !ok {
		return nil, ports.ErrUnauthorized
	}
	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}
	copied := *user
	return &copied, nil
}

type memorySessionRepo struct {
	active map[string]time.Time
	err    error
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{active: map[string]time.Time{}}
}

func (r *memorySessionRepo) CreateSession(ctx context.Context, userID, fingerprint string, expiresAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.active[fingerprint] = expiresAt
	return nil
}

func (r *memorySessionRepo) DeactivateSession(ctx context.Context, fingerprint string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.active, fingerprint)
	return nil
}

func (r *memorySessionRepo) IsActive(ctx context.Context, fingerprint string, now time.Time) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	expiresAt, ok := r.active[fingerprint]
	return ok && expiresAt.After(now), nil
}

type memoryStorage struct {
	objects   map[string][]byte
	removed   []string
	uploadErr error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (s *memoryStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.objects[bucket+"/"+objectName] = data
	return "https://cdn.test/" + bucket + "/" + objectName, nil
}

func (s *memoryStorage) Remove(ctx context.Context, bucket, objectName string) error {
	key := bucket + "/" + objectName
	if _, ok := s.objects[key]; !ok {
		return errors.New("no such object")
	}
	delete(s.objects, key)
	s.removed = append(s.removed, key)
	return nil
}

type recordingNotifier struct {
	calls []string
	err   error
}

func (n *recordingNotifier) TripRequestSubmitted(ctx context.Context, user *domain.User, trip *domain.TripRequest) error {
	n.calls = append(n.calls, trip.ID)
	return n.err
}

type memoryUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	upsertErr error
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (r *memoryUserRepo) UpsertByEmail(ctx context.Context, email string, displayName *string, avatar *string) (*domain.User, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	user, ok := r.byEmail[email]
	if !ok {
		user = &domain.User{ID: "user_" + email, Email: email, Role: domain.RoleCustomer}
		r.byEmail[email] = user
		r.byID[user.ID] = user
	}
	if displayName != nil && user.DisplayName == "" {
		user.DisplayName = *displayName
	}
	if avatar != nil && user.Avatar == nil {
		user.Avatar = avatar
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) UpdateProfile(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}
	copied := *user
	return &copied, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
