package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
)

const (
	DashboardTripLimit    = 10
	DashboardBookingLimit = 5
)

type DashboardStats struct {
	TotalTrips     int     `json:"totalTrips"`
	ActiveTrips    int     `json:"activeTrips"`
	CompletedTrips int     `json:"completedTrips"`
	TotalSpent     float64 `json:"totalSpent"`
}

type Dashboard struct {
	Trips    []domain.TripRequest `json:"trips"`
	Bookings []domain.Booking     `json:"bookings"`
	Stats    DashboardStats       `json:"stats"`
}

type DashboardService struct {
	trips    ports.TripRequestRepository
	bookings ports.BookingRepository
}

func NewDashboardService(trips ports.TripRequestRepository, bookings ports.BookingRepository) *DashboardService {
	return &DashboardService{trips: trips, bookings: bookings}
}

// Load fetches the user's most recent trip requests, then their most recent
// bookings, newest first.
func (s *DashboardService) Load(ctx context.Context, userID string) (*Dashboard, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrUserRequired
	}

	trips, err := s.trips.List(ctx, recentFor(userID, DashboardTripLimit))
	if err != nil {
		return nil, fmt.Errorf("load trip requests: %w", err)
	}
	bookings, err := s.bookings.List(ctx, recentFor(userID, DashboardBookingLimit))
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	return &Dashboard{
		Trips:    trips,
		Bookings: bookings,
		Stats:    Summarize(trips, bookings),
	}, nil
}

func recentFor(userID string, limit int) domain.ListQuery {
	return domain.NewListQuery().
		WhereEq("userId", userID).
		Sort("createdAt", domain.SortDesc).
		WithLimit(limit)
}

func Summarize(trips []domain.TripRequest, bookings []domain.Booking) DashboardStats {
	stats := DashboardStats{TotalTrips: len(trips)}
	for _, trip := range trips {
		if trip.Status.IsActive() {
			stats.ActiveTrips++
		}
		if trip.Status == domain.TripStatusCompleted {
			stats.CompletedTrips++
		}
	}
	for _, booking := range bookings {
		if booking.IsPaid() {
			stats.TotalSpent += booking.TotalAmount
		}
	}
	return stats
}
