package domain

import (
	"time"
)

type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusSubmitted TripStatus = "submitted"
	TripStatusInReview  TripStatus = "in_review"
	TripStatusQuoted    TripStatus = "quoted"
	TripStatusAccepted  TripStatus = "accepted"
	TripStatusBooked    TripStatus = "booked"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// TripStatuses lists every status in lifecycle order.
var TripStatuses = []TripStatus{
	TripStatusDraft,
	TripStatusSubmitted,
	TripStatusInReview,
	TripStatusQuoted,
	TripStatusAccepted,
	TripStatusBooked,
	TripStatusCompleted,
	TripStatusCancelled,
}

func (s TripStatus) Valid() bool {
	for _, known := range TripStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsActive reports whether a consultant is still working on the request.
func (s TripStatus) IsActive() bool {
	switch s {
	case TripStatusSubmitted, TripStatusInReview, TripStatusQuoted, TripStatusAccepted:
		return true
	}
	return false
}

// DateLayout is the wire and column format of trip start and end dates.
const DateLayout = "2006-01-02"

type TripRequest struct {
	ID                        string     `db:"id" json:"id"`
	UserID                    string     `db:"user_id" json:"userId"`
	Title                     string     `db:"title" json:"title"`
	DestinationCountries      StringList `db:"destination_countries" json:"destinationCountries"`
	StartDate                 *Date      `db:"start_date" json:"startDate"`
	EndDate                   *Date      `db:"end_date" json:"endDate"`
	FlexibleDates             Flag       `db:"flexible_dates" json:"flexibleDates"`
	TravelerCountAdults       int        `db:"traveler_count_adults" json:"travelerCountAdults"`
	TravelerCountChildren     int        `db:"traveler_count_children" json:"travelerCountChildren"`
	TripType                  string     `db:"trip_type" json:"tripType"`
	AccommodationLevel        string     `db:"accommodation_level" json:"accommodationLevel"`
	BudgetMin                 int        `db:"budget_min" json:"budgetMin"`
	BudgetMax                 int        `db:"budget_max" json:"budgetMax"`
	ActivityPreferences       StringList `db:"activity_preferences" json:"activityPreferences"`
	TransportationPreferences string     `db:"transportation_preferences" json:"transportationPreferences"`
	SpecialRequests           string     `db:"special_requests" json:"specialRequests"`
	Status                    TripStatus `db:"status" json:"status"`
	CreatedAt                 time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt                 time.Time  `db:"updated_at" json:"updatedAt"`
}

func (t TripRequest) Travelers() int {
	return t.TravelerCountAdults + t.TravelerCountChildren
}
