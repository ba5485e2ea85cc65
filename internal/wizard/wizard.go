// Package wizard holds the state of the six-step trip request form. It keeps
// the current step and the collected answers; it never talks to storage.
package wizard

import (
	"math"
	"strings"
	"time"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
)

type Step int

const (
	StepDestinations Step = iota + 1
	StepDatesAndParty
	StepTripStyle
	StepAccommodation
	StepBudgetAndPreferences
	StepReview
)

const (
	FirstStep  = StepDestinations
	TotalSteps = int(StepReview)
)

var stepTitles = map[Step]string{
	StepDestinations:         "Destinations",
	StepDatesAndParty:        "Dates & Party",
	StepTripStyle:            "Trip Style",
	StepAccommodation:        "Accommodation",
	StepBudgetAndPreferences: "Budget & Preferences",
	StepReview:               "Review & Submit",
}

func (s Step) Title() string {
	return stepTitles[s]
}

func (s Step) Valid() bool {
	return s >= FirstStep && s <= StepReview
}

// Budget slider bounds.
const (
	BudgetFloor   = 500
	BudgetCeiling = 15000
	BudgetStep    = 250
)

// Form is everything the traveler has entered so far. All fields are
// optional until the request is persisted.
type Form struct {
	Title                     string
	DestinationCountries      domain.StringList
	StartDate                 *domain.Date
	EndDate                   *domain.Date
	FlexibleDates             bool
	TravelerCountAdults       int
	TravelerCountChildren     int
	TripType                  string
	AccommodationLevel        string
	BudgetMin                 int
	BudgetMax                 int
	ActivityPreferences       domain.StringList
	TransportationPreferences string
	SpecialRequests           string
}

func DefaultForm() Form {
	return Form{
		DestinationCountries:  domain.StringList{},
		TravelerCountAdults:   2,
		TravelerCountChildren: 0,
		BudgetMin:             1000,
		BudgetMax:             5000,
		ActivityPreferences:   domain.StringList{},
	}
}

type Wizard struct {
	step Step
	form Form
}

func New() *Wizard {
	return &Wizard{step: FirstStep, form: DefaultForm()}
}

// Restore rebuilds a wizard from a previously rendered page. An out of range
// step is pulled back inside the bounds.
func Restore(step Step, form Form) *Wizard {
	switch {
	case step < FirstStep:
		step = FirstStep
	case step > StepReview:
		step = StepReview
	}
	w := &Wizard{step: step}
	w.Update(form)
	return w
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Form() Form {
	form := w.form
	form.DestinationCountries = append(domain.StringList{}, w.form.DestinationCountries...)
	form.ActivityPreferences = append(domain.StringList{}, w.form.ActivityPreferences...)
	return form
}

func (w *Wizard) IsFirst() bool {
	return w.step == FirstStep
}

func (w *Wizard) IsLast() bool {
	return w.step == StepReview
}

// Next moves one step forward. It reports whether the step changed.
func (w *Wizard) Next() bool {
	if w.IsLast() {
		return false
	}
	w.step++
	return true
}

// Previous moves one step back. It reports whether the step changed.
func (w *Wizard) Previous() bool {
	if w.IsFirst() {
		return false
	}
	w.step--
	return true
}

// Progress is the completion percentage shown above the form.
func (w *Wizard) Progress() int {
	return int(math.Round(float64(w.step) * 100 / float64(TotalSteps)))
}

// Update replaces the form answers, applying the same bounds the page
// controls enforce.
func (w *Wizard) Update(form Form) {
	if form.DestinationCountries == nil {
		form.DestinationCountries = domain.StringList{}
	}
	if form.ActivityPreferences == nil {
		form.ActivityPreferences = domain.StringList{}
	}
	w.form = form
	w.SetAdults(form.TravelerCountAdults)
	w.SetChildren(form.TravelerCountChildren)
}

func (w *Wizard) SetAdults(n int) {
	if n < 1 {
		n = 1
	}
	w.form.TravelerCountAdults = n
}

func (w *Wizard) SetChildren(n int) {
	if n < 0 {
		n = 0
	}
	w.form.TravelerCountChildren = n
}

func (w *Wizard) ToggleDestination(country string) {
	country = strings.TrimSpace(country)
	if country == "" {
		return
	}
	w.form.DestinationCountries = w.form.DestinationCountries.Toggle(country)
}

func (w *Wizard) ToggleActivity(activityID string) {
	activityID = strings.TrimSpace(activityID)
	if activityID == "" {
		return
	}
	w.form.ActivityPreferences = w.form.ActivityPreferences.Toggle(activityID)
}

// DefaultTitle is used when the traveler leaves the title blank.
func (f Form) DefaultTitle() string {
	return "Trip to " + strings.Join(f.DestinationCountries, ", ")
}

// Snapshot builds the full record for the current answers. The caller
// supplies the identifier and clock so every save produces a fresh record.
func (w *Wizard) Snapshot(id, userID string, status domain.TripStatus, now time.Time) domain.TripRequest {
	form := w.Form()
	title := form.Title
	if strings.TrimSpace(title) == "" {
		title = form.DefaultTitle()
	}
	return domain.TripRequest{
		ID:                        id,
		UserID:                    userID,
		Title:                     title,
		DestinationCountries:      form.DestinationCountries,
		StartDate:                 dayOf(form.StartDate),
		EndDate:                   dayOf(form.EndDate),
		FlexibleDates:             domain.Flag(form.FlexibleDates),
		TravelerCountAdults:       form.TravelerCountAdults,
		TravelerCountChildren:     form.TravelerCountChildren,
		TripType:                  form.TripType,
		AccommodationLevel:        form.AccommodationLevel,
		BudgetMin:                 form.BudgetMin,
		BudgetMax:                 form.BudgetMax,
		ActivityPreferences:       form.ActivityPreferences,
		TransportationPreferences: form.TransportationPreferences,
		SpecialRequests:           form.SpecialRequests,
		Status:                    status,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
}

func dayOf(d *domain.Date) *domain.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	day := domain.NewDate(d.Time)
	return &day
}
