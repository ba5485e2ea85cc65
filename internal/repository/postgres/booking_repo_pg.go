package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

var bookingTable = table{
	name:    "bookings",
	selects: "id, user_id, booking_reference, total_amount, currency, payment_status, booking_status, created_at",
	fields: map[string]column{
		"id":               {name: "id"},
		"userId":           {name: "user_id"},
		"bookingReference": {name: "booking_reference"},
		"paymentStatus":    {name: "payment_status"},
		"bookingStatus":    {name: "booking_status"},
		"createdAt":        {name: "created_at", kind: kindTime},
	},
}

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Booking, error) {
	query, args, err := buildList(bookingTable, q)
	if err != nil {
		return nil, err
	}
	bookings := []domain.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}
