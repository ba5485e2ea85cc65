package wizard

import (
	"strconv"
	"strings"
)

// Option is a fixed choice offered by one of the wizard steps.
type Option struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Price       string
}

var TripTypes = []Option{
	{ID: "safari", Name: "Safari Adventure", Icon: "binoculars", Description: "Wildlife viewing and game drives"},
	{ID: "cultural", Name: "Cultural Experience", Icon: "users", Description: "Local communities and traditions"},
	{ID: "adventure", Name: "Adventure & Hiking", Icon: "mountain", Description: "Trekking and outdoor activities"},
	{ID: "luxury", Name: "Luxury Escape", Icon: "star", Description: "Premium accommodations and services"},
	{ID: "family", Name: "Family Friendly", Icon: "heart", Description: "Perfect for traveling with children"},
	{ID: "photography", Name: "Photography Tour", Icon: "camera", Description: "Specialized for photographers"},
}

var AccommodationLevels = []Option{
	{ID: "budget", Name: "Budget", Description: "Comfortable and affordable", Price: "$50-150/night"},
	{ID: "mid-range", Name: "Mid-Range", Description: "Good comfort and amenities", Price: "$150-400/night"},
	{ID: "luxury", Name: "Luxury", Description: "Premium accommodations", Price: "$400-1000/night"},
	{ID: "ultra-luxury", Name: "Ultra Luxury", Description: "Exclusive and exceptional", Price: "$1000+/night"},
}

var TransportationOptions = []Option{
	{ID: "road", Name: "Road Transfer", Icon: "car", Description: "Comfortable road transportation"},
	{ID: "air", Name: "Domestic Flights", Icon: "plane", Description: "Quick air transfers between destinations"},
	{ID: "mixed", Name: "Mixed Transport", Icon: "compass", Description: "Combination of road and air travel"},
}

// Summary is the review step's read-only view of the answers.
type Summary struct {
	Destinations  string
	Travelers     string
	TripType      string
	Accommodation string
	Budget        [2]int
	Dates         string
}

func (w *Wizard) Summary() Summary {
	form := w.Form()
	s := Summary{
		Destinations:  orNotSelected(strings.Join(form.DestinationCountries, ", ")),
		Travelers:     travelersLabel(form.TravelerCountAdults, form.TravelerCountChildren),
		TripType:      orNotSelected(strings.ReplaceAll(form.TripType, "-", " ")),
		Accommodation: orNotSelected(strings.ReplaceAll(form.AccommodationLevel, "-", " ")),
		Budget:        [2]int{form.BudgetMin, form.BudgetMax},
	}
	switch {
	case form.StartDate != nil && form.EndDate != nil:
		s.Dates = form.StartDate.Format("Jan 2") + " - " + form.EndDate.Format("Jan 2, 2006")
	case form.FlexibleDates:
		s.Dates = "Flexible dates"
	default:
		s.Dates = "Not selected"
	}
	return s
}

func orNotSelected(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not selected"
	}
	return value
}

func travelersLabel(adults, children int) string {
	label := pluralize(adults, "adult")
	if children > 0 {
		label += ", " + pluralize(children, "child")
	}
	return label
}

func pluralize(n int, noun string) string {
	word := noun + "s"
	if noun == "child" {
		word = "children"
	}
	if n == 1 {
		word = noun
	}
	return strconv.Itoa(n) + " " + word
}
