package ports

import (
	"context"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

type TripRequestNotifier interface {
	TripRequestSubmitted(ctx context.Context, user *domain.User, trip *domain.TripRequest) error
}
