package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
	"github.com/blink-new/ecotravel-booking-platform/internal/wizard"
)

var (
	ErrUserRequired         = errors.New("user id is required")
	ErrTripStatusNotAllowed = errors.New("trip requests may only be created as draft or submitted")
)

type TripRequestService struct {
	trips    ports.TripRequestRepository
	notifier ports.TripRequestNotifier
	now      func() time.Time
	newID    func(time.Time) string
}

// NewTripRequestService persists wizard snapshots. notifier is optional.
func NewTripRequestService(trips ports.TripRequestRepository, notifier ports.TripRequestNotifier) *TripRequestService {
	return &TripRequestService{
		trips:    trips,
		notifier: notifier,
		now:      time.Now,
		newID:    newTripID,
	}
}

func (s *TripRequestService) SaveDraft(ctx context.Context, user *domain.User, w *wizard.Wizard) (*domain.TripRequest, error) {
	return s.Create(ctx, user, w, domain.TripStatusDraft)
}

func (s *TripRequestService) Submit(ctx context.Context, user *domain.User, w *wizard.Wizard) (*domain.TripRequest, error) {
	return s.Create(ctx, user, w, domain.TripStatusSubmitted)
}

// Create snapshots the wizard into a new record. Every call creates a new
// record; drafts are never updated in place.
func (s *TripRequestService) Create(ctx context.Context, user *domain.User, w *wizard.Wizard, status domain.TripStatus) (*domain.TripRequest, error) {
	if user == nil || strings.TrimSpace(user.ID) == "" {
		return nil, ErrUserRequired
	}
	if status != domain.TripStatusDraft && status != domain.TripStatusSubmitted {
		return nil, fmt.Errorf("%w: got %q", ErrTripStatusNotAllowed, status)
	}

	now := s.now()
	snapshot := w.Snapshot(s.newID(now), user.ID, status, now)
	saved, err := s.trips.Create(ctx, &snapshot)
	if err != nil {
		return nil, fmt.Errorf("save trip request: %w", err)
	}

	if status == domain.TripStatusSubmitted && s.notifier != nil {
		if err := s.notifier.TripRequestSubmitted(ctx, user, saved); err != nil {
			log.Printf("trip request: notify submission %s: %v", saved.ID, err)
		}
	}
	return saved, nil
}

// newTripID renders trip_<unix-ms>_<9 chars>. The suffix only needs to be
// unlikely to collide within the same millisecond.
func newTripID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("trip_%d_%s", now.UnixMilli(), suffix)
}
