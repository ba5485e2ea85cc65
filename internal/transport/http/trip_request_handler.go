package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
	"github.com/blink-new/ecotravel-booking-platform/internal/wizard"
)

// Wizard form actions.
const (
	actionNext              = "next"
	actionPrevious          = "previous"
	actionSaveDraft         = "save_draft"
	actionSubmit            = "submit"
	actionToggleDestination = "toggle_destination"
	actionToggleActivity    = "toggle_activity"
)

const (
	catalogUnavailableNotice = "Some trip options could not be loaded right now. You can still continue and our consultants will follow up."
	saveFailedMessage        = "We couldn't save your trip request. Your answers are still here, please try again."
)

type TripRequestHandler struct {
	trips   *service.TripRequestService
	catalog *service.CatalogService
}

type stepView struct {
	Number  int
	Title   string
	Current bool
	Done    bool
}

type wizardView struct {
	Step                  int
	StepTitle             string
	TotalSteps            int
	Progress              int
	IsFirst               bool
	IsLast                bool
	Steps                 []stepView
	Form                  wizard.Form
	Summary               wizard.Summary
	Destinations          []domain.Destination
	ActivityTypes         []domain.ActivityType
	TripTypes             []wizard.Option
	AccommodationLevels   []wizard.Option
	TransportationOptions []wizard.Option
	BudgetFloor           int
	BudgetCeiling         int
	BudgetStep            int
}

// TripRequestPayload is the JSON body of POST /api/v1/trip-requests.
type TripRequestPayload struct {
	Status                    string       `json:"status" example:"submitted"`
	Title                     string       `json:"title" example:"Trip to Kenya"`
	DestinationCountries      []string     `json:"destinationCountries" example:"Kenya"`
	StartDate                 *domain.Date `json:"startDate,omitempty" swaggertype:"string" example:"2026-07-01"`
	EndDate                   *domain.Date `json:"endDate,omitempty" swaggertype:"string" example:"2026-07-10"`
	FlexibleDates             bool         `json:"flexibleDates"`
	TravelerCountAdults       *int         `json:"travelerCountAdults,omitempty" example:"2"`
	TravelerCountChildren     int          `json:"travelerCountChildren" example:"0"`
	TripType                  string       `json:"tripType" example:"safari"`
	AccommodationLevel        string       `json:"accommodationLevel" example:"luxury"`
	BudgetMin                 *int         `json:"budgetMin,omitempty" example:"2000"`
	BudgetMax                 *int         `json:"budgetMax,omitempty" example:"6000"`
	ActivityPreferences       []string     `json:"activityPreferences"`
	TransportationPreferences string       `json:"transportationPreferences" example:"mixed"`
	SpecialRequests           string       `json:"specialRequests"`
}

func RegisterTripRequests(pages, api *echo.Group, trips *service.TripRequestService, catalog *service.CatalogService) {
	handler := &TripRequestHandler{trips: trips, catalog: catalog}

	pages.GET("/trips/new", handler.showWizard)
	pages.POST("/trips/new", handler.postWizard)
	api.POST("/trip-requests", handler.createTripRequest)
}

func (h *TripRequestHandler) showWizard(c echo.Context) error {
	return h.renderWizard(c, http.StatusOK, wizard.New(), "")
}

func (h *TripRequestHandler) postWizard(c echo.Context) error {
	w := wizardFromForm(c)
	action, arg, _ := strings.Cut(c.FormValue("action"), ":")
	switch action {
	case actionNext:
		w.Next()
	case actionPrevious:
		w.Previous()
	case actionToggleDestination:
		w.ToggleDestination(arg)
	case actionToggleActivity:
		w.ToggleActivity(arg)
	case actionSaveDraft:
		return h.save(c, w, domain.TripStatusDraft)
	case actionSubmit:
		return h.save(c, w, domain.TripStatusSubmitted)
	}
	return h.renderWizard(c, http.StatusOK, w, "")
}

func (h *TripRequestHandler) save(c echo.Context, w *wizard.Wizard, status domain.TripStatus) error {
	user, _ := CurrentUser(c)
	if _, err := h.trips.Create(c.Request().Context(), user, w, status); err != nil {
		if errors.Is(err, service.ErrUserRequired) {
			return c.Redirect(http.StatusSeeOther, "/login?redirect="+url.QueryEscape("/trips/new"))
		}
		log.Printf("trips: save %s trip request: %v", status, err)
		return h.renderWizard(c, http.StatusBadGateway, w, saveFailedMessage)
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *TripRequestHandler) renderWizard(c echo.Context, status int, w *wizard.Wizard, errMessage string) error {
	view := wizardView{
		Step:                  int(w.Step()),
		StepTitle:             w.Step().Title(),
		TotalSteps:            wizard.TotalSteps,
		Progress:              w.Progress(),
		IsFirst:               w.IsFirst(),
		IsLast:                w.IsLast(),
		Form:                  w.Form(),
		Summary:               w.Summary(),
		TripTypes:             wizard.TripTypes,
		AccommodationLevels:   wizard.AccommodationLevels,
		TransportationOptions: wizard.TransportationOptions,
		BudgetFloor:           wizard.BudgetFloor,
		BudgetCeiling:         wizard.BudgetCeiling,
		BudgetStep:            wizard.BudgetStep,
	}
	for n := int(wizard.FirstStep); n <= wizard.TotalSteps; n++ {
		view.Steps = append(view.Steps, stepView{
			Number:  n,
			Title:   wizard.Step(n).Title(),
			Current: n == view.Step,
			Done:    n < view.Step,
		})
	}

	page := newPage(c, "Plan Your Trip", nil)
	if !h.loadCatalog(c.Request().Context(), &view) {
		page.Notice = catalogUnavailableNotice
	}
	page.Data = view
	page.Error = errMessage
	return c.Render(status, "trip_wizard.html", page)
}

// loadCatalog fills the reference lists. It reports false when either list
// could not be loaded; the wizard then renders with what it has.
func (h *TripRequestHandler) loadCatalog(ctx context.Context, view *wizardView) bool {
	ok := true
	destinations, err := h.catalog.FeaturedDestinations(ctx)
	if err != nil {
		log.Printf("trips: load destinations: %v", err)
		ok = false
	}
	activities, err := h.catalog.ActivityTypes(ctx)
	if err != nil {
		log.Printf("trips: load activity types: %v", err)
		ok = false
	}
	view.Destinations = destinations
	view.ActivityTypes = activities
	return ok
}

// wizardFromForm rebuilds the wizard from the fields the previous page
// rendered. Missing or malformed values fall back to the form defaults.
func wizardFromForm(c echo.Context) *wizard.Wizard {
	form := wizard.DefaultForm()
	params, err := c.FormParams()
	if err != nil {
		return wizard.New()
	}

	form.Title = params.Get("title")
	form.DestinationCountries = nonBlank(params["destination"])
	form.ActivityPreferences = nonBlank(params["activity"])
	form.StartDate = formDate(params.Get("startDate"))
	form.EndDate = formDate(params.Get("endDate"))
	form.FlexibleDates = formBool(params.Get("flexibleDates"))
	form.TravelerCountAdults = formInt(params.Get("adults"), form.TravelerCountAdults)
	form.TravelerCountChildren = formInt(params.Get("children"), form.TravelerCountChildren)
	form.TripType = strings.TrimSpace(params.Get("tripType"))
	form.AccommodationLevel = strings.TrimSpace(params.Get("accommodationLevel"))
	form.BudgetMin = clampBudget(formInt(params.Get("budgetMin"), form.BudgetMin))
	form.BudgetMax = clampBudget(formInt(params.Get("budgetMax"), form.BudgetMax))
	form.TransportationPreferences = strings.TrimSpace(params.Get("transportation"))
	form.SpecialRequests = params.Get("specialRequests")

	step := formInt(params.Get("step"), int(wizard.FirstStep))
	return wizard.Restore(wizard.Step(step), form)
}

func (h *TripRequestHandler) createTripRequest(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req TripRequestPayload
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	w := wizard.Restore(wizard.StepReview, req.form())
	trip, err := h.trips.Create(c.Request().Context(), user, w, domain.TripStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripStatusNotAllowed):
			return c.JSON(http.StatusBadRequest, util.FieldError("status", "status must be draft or submitted"))
		case errors.Is(err, service.ErrUserRequired):
			return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
		default:
			log.Printf("trips: create trip request: %v", err)
			return c.JSON(http.StatusBadGateway, util.Error("could not save trip request"))
		}
	}

	return c.JSON(http.StatusCreated, util.Data("tripRequest", trip))
}

func (p TripRequestPayload) form() wizard.Form {
	form := wizard.DefaultForm()
	form.Title = p.Title
	form.DestinationCountries = nonBlank(p.DestinationCountries)
	form.ActivityPreferences = nonBlank(p.ActivityPreferences)
	form.StartDate = p.StartDate
	form.EndDate = p.EndDate
	form.FlexibleDates = p.FlexibleDates
	if p.TravelerCountAdults != nil {
		form.TravelerCountAdults = *p.TravelerCountAdults
	}
	form.TravelerCountChildren = p.TravelerCountChildren
	form.TripType = strings.TrimSpace(p.TripType)
	form.AccommodationLevel = strings.TrimSpace(p.AccommodationLevel)
	if p.BudgetMin != nil {
		form.BudgetMin = *p.BudgetMin
	}
	if p.BudgetMax != nil {
		form.BudgetMax = *p.BudgetMax
	}
	form.TransportationPreferences = strings.TrimSpace(p.TransportationPreferences)
	form.SpecialRequests = p.SpecialRequests
	return form
}

func nonBlank(values []string) domain.StringList {
	out := domain.StringList{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !out.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

func formDate(raw string) *domain.Date {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &d
}

func formBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}

func formInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

func clampBudget(n int) int {
	switch {
	case n < wizard.BudgetFloor:
		return wizard.BudgetFloor
	case n > wizard.BudgetCeiling:
		return wizard.BudgetCeiling
	}
	return n
}
