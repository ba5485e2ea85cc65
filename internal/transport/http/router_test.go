package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/content"
	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

const (
	testLoginToken = "good-token"
	testCSRFToken  = "csrf-test-token"
)

type fakeIdentity struct {
	user    *domain.User
	patches []domain.UserPatch
}

func (f *fakeIdentity) LoginURL(redirectURL string) string {
	return "https://auth.example.com/login?" + url.Values{"redirect_url": {redirectURL}}.Encode()
}

func (f *fakeIdentity) LogoutURL(redirectURL string) string {
	return "https://auth.example.com/logout?" + url.Values{"redirect_url": {redirectURL}}.Encode()
}

func (f *fakeIdentity) Resolve(_ context.Context, token string) (*domain.User, error) {
	if token != testLoginToken {
		return nil, ports.ErrUnauthorized
	}
	user := *f.user
	return &user, nil
}

func (f *fakeIdentity) UpdateMe(_ context.Context, principal ports.Principal, patch domain.UserPatch) (*domain.User, error) {
	if principal.UserID != f.user.ID {
		return nil, ports.ErrUnauthorized
	}
	f.patches = append(f.patches, patch)
	user := *f.user
	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}
	return &user, nil
}

type fakeTrips struct {
	trips     []domain.TripRequest
	created   []domain.TripRequest
	listErr   error
	createErr error
}

func (f *fakeTrips) List(_ context.Context, _ domain.ListQuery) ([]domain.TripRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.trips, nil
}

func (f *fakeTrips) Create(_ context.Context, trip *domain.TripRequest) (*domain.TripRequest, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, *trip)
	saved := *trip
	return &saved, nil
}

type fakeBookings struct {
	bookings []domain.Booking
}

func (f *fakeBookings) List(_ context.Context, _ domain.ListQuery) ([]domain.Booking, error) {
	return f.bookings, nil
}

type fakeDestinations struct {
	destinations []domain.Destination
	err          error
}

func (f *fakeDestinations) List(_ context.Context, _ domain.ListQuery) ([]domain.Destination, error) {
	return f.destinations, f.err
}

type fakeActivities struct {
	activities []domain.ActivityType
}

func (f *fakeActivities) List(_ context.Context, _ domain.ListQuery) ([]domain.ActivityType, error) {
	return f.activities, nil
}

type testApp struct {
	e        *echo.Echo
	auth     *service.AuthService
	identity *fakeIdentity
	trips    *fakeTrips
	bookings *fakeBookings
	dests    *fakeDestinations
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	app := &testApp{
		identity: &fakeIdentity{user: &domain.User{ID: "user_1", Email: "ada@example.com", DisplayName: "Ada", Role: domain.RoleCustomer}},
		trips:    &fakeTrips{},
		bookings: &fakeBookings{},
		dests: &fakeDestinations{destinations: []domain.Destination{
			{ID: "dest_1", Name: "Maasai Mara", Country: "Kenya", IsFeatured: true},
		}},
	}
	activities := &fakeActivities{activities: []domain.ActivityType{
		{ID: "act_1", Name: "Wildlife Safari", Category: "wildlife"},
	}}

	pages, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load returned error: %v", err)
	}

	app.auth = service.NewAuthService(app.identity, util.NewJWTManager("test-secret", time.Hour), nil, nil, service.AuthServiceConfig{})
	e, err := NewRouter(RouterConfig{
		AllowOrigins: []string{"*"},
		Auth:         AuthOptions{PublicBaseURL: "http://localhost:8080"},
	}, Services{
		Auth:       app.auth,
		Trips:      service.NewTripRequestService(app.trips, nil),
		Dashboards: service.NewDashboardService(app.trips, app.bookings),
		Catalog:    service.NewCatalogService(app.dests, activities),
		Pages:      pages,
	})
	if err != nil {
		t.Fatalf("NewRouter returned error: %v", err)
	}
	app.e = e
	return app
}

func (a *testApp) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	value, _, err := a.auth.CompleteLogin(context.Background(), service.NewSession(), testLoginToken)
	if err != nil {
		t.Fatalf("CompleteLogin returned error: %v", err)
	}
	return &http.Cookie{Name: SessionCookieName, Value: value}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func formRequest(target string, form url.Values) *http.Request {
	form.Set("_csrf", testCSRFToken)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRFToken})
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(csrfHeaderName, testCSRFToken)
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: testCSRFToken})
	return req
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			found = cookie
		}
	}
	return found
}

func TestDashboardRedirectsAnonymousVisitorToLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "/login?redirect=%2Fdashboard" {
		t.Fatalf("expected login redirect, got %q", got)
	}
}

func TestDashboardRendersStats(t *testing.T) {
	app := newTestApp(t)
	app.trips.trips = []domain.TripRequest{
		{ID: "trip_1", Title: "Kenya Safari", Status: domain.TripStatusSubmitted},
		{ID: "trip_2", Title: "Iceland", Status: domain.TripStatusCompleted},
		{ID: "trip_3", Title: "Draft", Status: domain.TripStatusDraft},
	}
	app.bookings.bookings = []domain.Booking{
		{ID: "b1", BookingReference: "ECO-1", TotalAmount: 1234.5, Currency: "USD", PaymentStatus: domain.PaymentStatusPaid},
		{ID: "b2", BookingReference: "ECO-2", TotalAmount: 900, Currency: "USD", PaymentStatus: domain.PaymentStatusPending},
	}

	rec := app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), app.sessionCookie(t))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Welcome back, Ada!",
		`data-stat="total">3<`,
		`data-stat="active">1<`,
		`data-stat="completed">1<`,
		"1,234.50",
		"Kenya Safari",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected dashboard to contain %q", want)
		}
	}
}

func TestDashboardLoadFailureShowsBanner(t *testing.T) {
	app := newTestApp(t)
	app.trips.listErr = errors.New("backend down")

	rec := app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), app.sessionCookie(t))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please refresh the page") {
		t.Fatalf("expected load failure banner")
	}
}

func TestDashboardAPIRequiresAuthentication(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestDashboardAPIReturnsStats(t *testing.T) {
	app := newTestApp(t)
	app.trips.trips = []domain.TripRequest{{ID: "trip_1", Status: domain.TripStatusQuoted}}

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil), app.sessionCookie(t))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload struct {
		TripRequests []domain.TripRequest   `json:"tripRequests"`
		Stats        service.DashboardStats `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.TripRequests) != 1 || payload.Stats.ActiveTrips != 1 {
		t.Fatalf("expected one active trip, got %+v", payload)
	}
}

func TestWizardNextAdvancesStep(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{"step": {"1"}, "action": {actionNext}, "destination": {"Kenya"}}

	rec := app.do(formRequest("/trips/new", form), app.sessionCookie(t))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="step" value="2"`) {
		t.Fatalf("expected wizard on step 2")
	}
	if !strings.Contains(body, `value="Kenya"`) {
		t.Fatalf("expected selected destination to be carried forward")
	}
}

func TestWizardPreviousStopsAtFirstStep(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{"step": {"1"}, "action": {actionPrevious}}

	rec := app.do(formRequest("/trips/new", form), app.sessionCookie(t))

	if !strings.Contains(rec.Body.String(), `name="step" value="1"`) {
		t.Fatalf("expected wizard to stay on step 1")
	}
}

func TestWizardSubmitCreatesTripRequest(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{
		"step":        {"6"},
		"action":      {actionSubmit},
		"title":       {"Safari Dreams"},
		"destination": {"Kenya", "Kenya", " "},
		"activity":    {"act_1"},
		"adults":      {"3"},
		"budgetMin":   {"100"},
		"budgetMax":   {"20000"},
	}

	rec := app.do(formRequest("/trips/new", form), app.sessionCookie(t))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", got)
	}
	if len(app.trips.created) != 1 {
		t.Fatalf("expected one created trip, got %d", len(app.trips.created))
	}
	trip := app.trips.created[0]
	if trip.Status != domain.TripStatusSubmitted || trip.UserID != "user_1" {
		t.Fatalf("expected submitted trip for user_1, got %s for %s", trip.Status, trip.UserID)
	}
	if len(trip.DestinationCountries) != 1 || trip.DestinationCountries[0] != "Kenya" {
		t.Fatalf("expected destinations [Kenya], got %v", trip.DestinationCountries)
	}
	if trip.TravelerCountAdults != 3 {
		t.Fatalf("expected 3 adults, got %d", trip.TravelerCountAdults)
	}
	if trip.BudgetMin != 500 || trip.BudgetMax != 15000 {
		t.Fatalf("expected budget clamped to 500-15000, got %d-%d", trip.BudgetMin, trip.BudgetMax)
	}
}

func TestWizardEnterKeyDefaultsToForwardAction(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(formRequest("/trips/new", url.Values{"step": {"1"}, "action": {actionNext}}), app.sessionCookie(t))
	body := rec.Body.String()
	next := strings.Index(body, `name="action" value="next"`)
	previous := strings.Index(body, `name="action" value="previous"`)
	if next < 0 || previous < 0 {
		t.Fatalf("expected next and previous buttons on step 2")
	}
	if next > previous {
		t.Fatalf("expected next to be the first submit button in the form")
	}

	rec = app.do(formRequest("/trips/new", url.Values{"step": {"5"}, "action": {actionNext}}), app.sessionCookie(t))
	body = rec.Body.String()
	submit := strings.Index(body, `name="action" value="submit"`)
	previous = strings.Index(body, `name="action" value="previous"`)
	if submit < 0 || previous < 0 || submit > previous {
		t.Fatalf("expected submit to be the first submit button on the last step")
	}
}

func TestWizardToggleDestination(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{"step": {"1"}, "action": {actionToggleDestination + ":Kenya"}}

	rec := app.do(formRequest("/trips/new", form), app.sessionCookie(t))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="destination" value="Kenya"`) {
		t.Fatalf("expected Kenya to be selected")
	}
}

func TestWizardSaveFailureKeepsAnswers(t *testing.T) {
	app := newTestApp(t)
	app.trips.createErr = errors.New("backend down")
	form := url.Values{"step": {"6"}, "action": {actionSaveDraft}, "title": {"Safari Dreams"}}

	rec := app.do(formRequest("/trips/new", form), app.sessionCookie(t))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Your answers are still here") {
		t.Fatalf("expected save failure banner")
	}
	if !strings.Contains(body, "Safari Dreams") {
		t.Fatalf("expected entered title to be preserved")
	}
}

func TestWizardCatalogFailureShowsNotice(t *testing.T) {
	app := newTestApp(t)
	app.dests.err = errors.New("backend down")

	rec := app.do(httptest.NewRequest(http.MethodGet, "/trips/new", nil), app.sessionCookie(t))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "could not be loaded right now") {
		t.Fatalf("expected catalog notice")
	}
}

func TestWizardRejectsMissingCSRFToken(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/trips/new", strings.NewReader("action=submit&step=6"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := app.do(req, app.sessionCookie(t))

	if rec.Code < http.StatusBadRequest {
		t.Fatalf("expected request to be rejected, got %d", rec.Code)
	}
	if len(app.trips.created) != 0 {
		t.Fatalf("expected no trip to be created")
	}
}

func TestCreateTripRequestAPI(t *testing.T) {
	app := newTestApp(t)
	body := `{"status":"draft","title":"","destinationCountries":["Peru"],"budgetMin":2000}`

	rec := app.do(jsonRequest(http.MethodPost, "/api/v1/trip-requests", body), app.sessionCookie(t))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		TripRequest domain.TripRequest `json:"tripRequest"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	trip := payload.TripRequest
	if trip.Status != domain.TripStatusDraft {
		t.Fatalf("expected draft status, got %s", trip.Status)
	}
	if trip.Title != "Trip to Peru" {
		t.Fatalf("expected default title, got %q", trip.Title)
	}
	if trip.BudgetMin != 2000 || trip.BudgetMax != 5000 || trip.TravelerCountAdults != 2 {
		t.Fatalf("expected defaults for omitted fields, got %+v", trip)
	}
	if !strings.HasPrefix(trip.ID, "trip_") {
		t.Fatalf("expected generated trip id, got %q", trip.ID)
	}
}

func TestCreateTripRequestAPIRejectsStatus(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(jsonRequest(http.MethodPost, "/api/v1/trip-requests", `{"status":"booked"}`), app.sessionCookie(t))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"field":"status"`) {
		t.Fatalf("expected status field error, got %s", rec.Body.String())
	}
	if len(app.trips.created) != 0 {
		t.Fatalf("expected no trip to be created")
	}
}

func TestCatalogAPI(t *testing.T) {
	app := newTestApp(t)
	cookie := app.sessionCookie(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/catalog/destinations", nil), cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Maasai Mara") {
		t.Fatalf("expected destinations, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/catalog/activity-types", nil), cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Wildlife Safari") {
		t.Fatalf("expected activity types, got %d: %s", rec.Code, rec.Body.String())
	}

	app.dests.err = errors.New("backend down")
	rec = app.do(httptest.NewRequest(http.MethodGet, "/api/v1/catalog/destinations", nil), cookie)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}

func TestLoginRedirectsToIdentityProvider(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/login?redirect=%2Ftrips%2Fnew", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if location.Host != "auth.example.com" {
		t.Fatalf("expected identity provider host, got %q", location.Host)
	}
	want := "http://localhost:8080/auth/callback?redirect=%2Ftrips%2Fnew"
	if got := location.Query().Get("redirect_url"); got != want {
		t.Fatalf("expected redirect_url %q, got %q", want, got)
	}
}

func TestLoginSkipsProviderWhenSignedIn(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/login", nil), app.sessionCookie(t))

	if got := rec.Header().Get(echo.HeaderLocation); got != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", got)
	}
}

func TestAuthCallbackSetsSessionCookie(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/auth/callback?token="+testLoginToken+"&redirect=%2Ftrips%2Fnew", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "/trips/new" {
		t.Fatalf("expected redirect to /trips/new, got %q", got)
	}
	cookie := responseCookie(rec, SessionCookieName)
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", cookie)
	}

	follow := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil), cookie)
	if follow.Code != http.StatusOK || !strings.Contains(follow.Body.String(), "ada@example.com") {
		t.Fatalf("expected cookie to sign the user in, got %d", follow.Code)
	}
}

func TestAuthCallbackRejectsInvalidToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/auth/callback?token=nope", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if responseCookie(rec, SessionCookieName) != nil {
		t.Fatalf("expected no session cookie")
	}
}

func TestAuthCallbackIgnoresOffsiteRedirect(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/auth/callback?token="+testLoginToken+"&redirect=%2F%2Fevil.example.com", nil))

	if got := rec.Header().Get(echo.HeaderLocation); got != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", got)
	}
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(formRequest("/logout", url.Values{}), app.sessionCookie(t))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderLocation), "https://auth.example.com/logout?") {
		t.Fatalf("expected identity provider logout, got %q", rec.Header().Get(echo.HeaderLocation))
	}
	cookie := responseCookie(rec, SessionCookieName)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected cleared session cookie, got %+v", cookie)
	}
}

func TestInvalidSessionCookieIsCleared(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), &http.Cookie{Name: SessionCookieName, Value: "garbage"})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	cookie := responseCookie(rec, SessionCookieName)
	if cookie == nil || cookie.Value != "" {
		t.Fatalf("expected cleared session cookie, got %+v", cookie)
	}
}

func TestPatchMeReissuesSessionCookie(t *testing.T) {
	app := newTestApp(t)
	original := app.sessionCookie(t)

	rec := app.do(jsonRequest(http.MethodPatch, "/api/v1/users/me", `{"displayName":"  Ada L. "}`), original)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"displayName":"Ada L."`) {
		t.Fatalf("expected trimmed display name, got %s", rec.Body.String())
	}
	cookie := responseCookie(rec, SessionCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("expected re-issued session cookie")
	}

	follow := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil), cookie)
	if !strings.Contains(follow.Body.String(), `"displayName":"Ada L."`) {
		t.Fatalf("expected new cookie to carry the profile, got %s", follow.Body.String())
	}
}

func TestPatchMeRejectsBlankName(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(jsonRequest(http.MethodPatch, "/api/v1/users/me", `{"displayName":"   "}`), app.sessionCookie(t))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	if len(app.identity.patches) != 0 {
		t.Fatalf("expected identity provider not to be called")
	}
}

func TestAvatarUploadUnavailableWithoutStorage(t *testing.T) {
	app := newTestApp(t)
	req, err := avatarRequest("/api/v1/users/me/avatar", []byte("\x89PNG\r\n\x1a\nfake"))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	rec := app.do(req, app.sessionCookie(t))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestPlaceholderPagesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/bookings", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}

	rec = app.do(httptest.NewRequest(http.MethodGet, "/bookings", nil), app.sessionCookie(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestPublicPagesAndFallback(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/landing", "/developer-roadmap", "/some/unknown/page"} {
		rec := app.do(httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %s, got %d", path, rec.Code)
		}
	}

	rec := app.do(httptest.NewRequest(http.MethodGet, "/api/v1/nothing-here", nil), app.sessionCookie(t))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestSwaggerDocumentListsAPIPaths(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("expected JSON document, got error: %v", err)
	}
	if doc.BasePath != "/api/v1" {
		t.Fatalf("expected basePath /api/v1, got %q", doc.BasePath)
	}
	for _, path := range []string{"/dashboard", "/trip-requests", "/users/me"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Fatalf("expected path %s in swagger document", path)
		}
	}
}
