package ports

import (
	"context"
	"errors"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("backend rejected credentials")
)

type TripRequestRepository interface {
	List(ctx context.Context, q domain.ListQuery) ([]domain.TripRequest, error)
	Create(ctx context.Context, trip *domain.TripRequest) (*domain.TripRequest, error)
}

type BookingRepository interface {
	List(ctx context.Context, q domain.ListQuery) ([]domain.Booking, error)
}

type DestinationRepository interface {
	List(ctx context.Context, q domain.ListQuery) ([]domain.Destination, error)
}

type ActivityTypeRepository interface {
	List(ctx context.Context, q domain.ListQuery) ([]domain.ActivityType, error)
}
