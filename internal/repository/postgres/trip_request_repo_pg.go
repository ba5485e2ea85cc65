package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

const tripRequestColumns = `id, user_id, title, destination_countries, start_date, end_date, flexible_dates,
        traveler_count_adults, traveler_count_children, trip_type, accommodation_level,
        budget_min, budget_max, activity_preferences, transportation_preferences,
        special_requests, status, created_at, updated_at`

var tripRequestTable = table{
	name:    "trip_requests",
	selects: tripRequestColumns,
	fields: map[string]column{
		"id":                 {name: "id"},
		"userId":             {name: "user_id"},
		"status":             {name: "status"},
		"tripType":           {name: "trip_type"},
		"accommodationLevel": {name: "accommodation_level"},
		"flexibleDates":      {name: "flexible_dates", kind: kindFlag},
		"budgetMin":          {name: "budget_min", kind: kindInt},
		"budgetMax":          {name: "budget_max", kind: kindInt},
		"startDate":          {name: "start_date", kind: kindTime},
		"createdAt":          {name: "created_at", kind: kindTime},
		"updatedAt":          {name: "updated_at", kind: kindTime},
	},
}

type TripRequestRepository struct {
	db *sqlx.DB
}

func NewTripRequestRepo(db *sqlx.DB) *TripRequestRepository {
	return &TripRequestRepository{db: db}
}

func (r *TripRequestRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.TripRequest, error) {
	query, args, err := buildList(tripRequestTable, q)
	if err != nil {
		return nil, err
	}
	trips := []domain.TripRequest{}
	if err := r.db.SelectContext(ctx, &trips, query, args...); err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *TripRequestRepository) Create(ctx context.Context, trip *domain.TripRequest) (*domain.TripRequest, error) {
	const query = `
        INSERT INTO trip_requests (
            id, user_id, title, destination_countries, start_date, end_date, flexible_dates,
            traveler_count_adults, traveler_count_children, trip_type, accommodation_level,
            budget_min, budget_max, activity_preferences, transportation_preferences,
            special_requests, status, created_at, updated_at
        ) VALUES (
            :id, :user_id, :title, :destination_countries, :start_date, :end_date, :flexible_dates,
            :traveler_count_adults, :traveler_count_children, :trip_type, :accommodation_level,
            :budget_min, :budget_max, :activity_preferences, :transportation_preferences,
            :special_requests, :status, :created_at, :updated_at
        )
        RETURNING ` + tripRequestColumns

	rows, err := r.db.NamedQueryContext(ctx, query, trip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved domain.TripRequest
	if rows.Next() {
		if err := rows.StructScan(&saved); err != nil {
			return nil, err
		}
		return &saved, nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trip, nil
}
