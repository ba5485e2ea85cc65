package hosted

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/repository/ports"
	"github.com/blink-new/ecotravel-booking-platform/internal/service"
)

type capturedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func newTestServer(t *testing.T, status int, response string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.Method = r.Method
			captured.Path = r.URL.Path
			captured.Auth = r.Header.Get("Authorization")
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				captured.Body = map[string]any{}
				if err := json.Unmarshal(raw, &captured.Body); err != nil {
					t.Errorf("request body is not json: %v", err)
				}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTripRequestListSendsQuery(t *testing.T) {
	var got capturedRequest
	srv := newTestServer(t, http.StatusOK, `{"records":[{"id":"trip_1","userId":"user_1","title":"Trip to Kenya","destinationCountries":"[\"Kenya\"]","flexibleDates":"1","travelerCountAdults":2,"budgetMin":1000,"budgetMax":5000,"status":"submitted"}]}`, &got)
	repo := NewTripRequestRepo(NewClient(srv.URL, "project-key", time.Second))

	q := domain.NewListQuery().WhereEq("userId", "user_1").Sort("createdAt", domain.SortDesc).WithLimit(10)
	trips, err := repo.List(context.Background(), q)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got.Method != http.MethodPost || got.Path != "/api/db/tripRequests/list" {
		t.Fatalf("unexpected request %s %s", got.Method, got.Path)
	}
	if got.Auth != "Bearer project-key" {
		t.Fatalf("expected project key auth, got %q", got.Auth)
	}
	where, _ := got.Body["where"].(map[string]any)
	if where["userId"] != "user_1" {
		t.Fatalf("expected where.userId user_1, got %v", got.Body["where"])
	}
	orderBy, _ := got.Body["orderBy"].(map[string]any)
	if orderBy["createdAt"] != "desc" {
		t.Fatalf("expected orderBy createdAt desc, got %v", got.Body["orderBy"])
	}
	if got.Body["limit"] != float64(10) {
		t.Fatalf("expected limit 10, got %v", got.Body["limit"])
	}
	if len(trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(trips))
	}
	trip := trips[0]
	if trip.DestinationCountries.String() != "Kenya" || !bool(trip.FlexibleDates) {
		t.Fatalf("unexpected decoded trip %+v", trip)
	}
	if trip.Status != domain.TripStatusSubmitted {
		t.Fatalf("expected submitted, got %s", trip.Status)
	}
}

func TestListEmptyRecordsIsNotNil(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{}`, nil)
	repo := NewBookingRepo(NewClient(srv.URL, "k", time.Second))
	bookings, err := repo.List(context.Background(), domain.NewListQuery())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if bookings == nil || len(bookings) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", bookings)
	}
}

func TestCreateEncodesWireForm(t *testing.T) {
	var got capturedRequest
	srv := newTestServer(t, http.StatusOK, `{"record":{"id":"trip_2","status":"draft"}}`, &got)
	repo := NewTripRequestRepo(NewClient(srv.URL, "k", time.Second))

	trip := &domain.TripRequest{
		ID:                   "trip_2",
		DestinationCountries: domain.StringList{"Kenya", "Tanzania"},
		FlexibleDates:        false,
		Status:               domain.TripStatusDraft,
	}
	saved, err := repo.Create(context.Background(), trip)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.Path != "/api/db/tripRequests" {
		t.Fatalf("unexpected path %s", got.Path)
	}
	if got.Body["destinationCountries"] != `["Kenya","Tanzania"]` {
		t.Fatalf("expected json text list, got %v", got.Body["destinationCountries"])
	}
	if got.Body["flexibleDates"] != "0" {
		t.Fatalf("expected flag 0, got %v", got.Body["flexibleDates"])
	}
	if saved.ID != "trip_2" {
		t.Fatalf("expected trip_2, got %s", saved.ID)
	}
}

func TestMultipleSortKeysKeepOrder(t *testing.T) {
	raw, err := encodeOrderBy([]domain.Order{{Field: "name", Direction: domain.SortAsc}, {Field: "country", Direction: "sideways"}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != `[{"name":"asc"},{"country":"asc"}]` {
		t.Fatalf("unexpected orderBy %s", raw)
	}
}

func TestErrorStatusMapsToPortErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ports.ErrUnauthorized},
		{http.StatusNotFound, ports.ErrNotFound},
	}
	for _, tc := range cases {
		srv := newTestServer(t, tc.status, `{"error":"nope"}`, nil)
		repo := NewDestinationRepo(NewClient(srv.URL, "k", time.Second))
		_, err := repo.List(context.Background(), domain.NewListQuery())
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
		if !IsAPIStatus(err, tc.status) {
			t.Fatalf("status %d: expected APIError, got %v", tc.status, err)
		}
	}
}

func TestServerErrorKeepsMessage(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `boom`, nil)
	repo := NewActivityTypeRepo(NewClient(srv.URL, "k", time.Second))
	_, err := repo.List(context.Background(), domain.NewListQuery())
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected error carrying body, got %v", err)
	}
	if errors.Is(err, ports.ErrNotFound) || errors.Is(err, ports.ErrUnauthorized) {
		t.Fatalf("500 must not map to a port error: %v", err)
	}
}

func TestTripRequestListToleratesMalformedList(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"records":[{"id":"trip_1","destinationCountries":"[\"Kenya\"]","status":"submitted"},{"id":"trip_2","destinationCountries":"Kenya, Tanzania","status":"completed"}]}`, nil)
	client := NewClient(srv.URL, "k", time.Second)

	dashboard, err := service.NewDashboardService(NewTripRequestRepo(client), NewBookingRepo(client)).Load(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(dashboard.Trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(dashboard.Trips))
	}
	if got := dashboard.Trips[0].DestinationCountries.String(); got != "Kenya" {
		t.Fatalf("expected Kenya, got %q", got)
	}
	if got := dashboard.Trips[1].DestinationCountries.String(); got != "Kenya, Tanzania" {
		t.Fatalf("expected raw text, got %q", got)
	}
	if dashboard.Stats.ActiveTrips != 1 || dashboard.Stats.CompletedTrips != 1 {
		t.Fatalf("unexpected stats %+v", dashboard.Stats)
	}
}
