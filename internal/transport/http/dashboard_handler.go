package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

const (
	recentBookingsShown = 3
	dashboardLoadFailed = "We couldn't load your trips and bookings right now. Please refresh the page to try again."
)

type DashboardHandler struct {
	dashboards *service.DashboardService
}

type dashboardView struct {
	Greeting       string
	Trips          []domain.TripRequest
	RecentBookings []domain.Booking
	Stats          service.DashboardStats
}

func RegisterDashboard(pages, api *echo.Group, dashboards *service.DashboardService) {
	handler := &DashboardHandler{dashboards: dashboards}

	pages.GET("/dashboard", handler.showDashboard)
	api.GET("/dashboard", handler.getDashboard)
}

func (h *DashboardHandler) showDashboard(c echo.Context) error {
	user, _ := CurrentUser(c)
	view := dashboardView{Greeting: greetingName(user)}
	page := newPage(c, "Dashboard", nil)
	status := http.StatusOK

	dashboard, err := h.dashboards.Load(c.Request().Context(), user.ID)
	if err != nil {
		log.Printf("dashboard: load for %s: %v", user.ID, err)
		page.Error = dashboardLoadFailed
		status = http.StatusBadGateway
	} else {
		view.Trips = dashboard.Trips
		view.Stats = dashboard.Stats
		view.RecentBookings = dashboard.Bookings
		if len(view.RecentBookings) > recentBookingsShown {
			view.RecentBookings = view.RecentBookings[:recentBookingsShown]
		}
	}

	page.Data = view
	return c.Render(status, "dashboard.html", page)
}

func (h *DashboardHandler) getDashboard(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	dashboard, err := h.dashboards.Load(c.Request().Context(), user.ID)
	if err != nil {
		log.Printf("dashboard: load for %s: %v", user.ID, err)
		return c.JSON(http.StatusBadGateway, util.Error("unable to load dashboard"))
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"tripRequests": dashboard.Trips,
		"bookings":     dashboard.Bookings,
		"stats":        dashboard.Stats,
	})
}

func greetingName(user *domain.User) string {
	if user == nil || strings.TrimSpace(user.DisplayName) == "" {
		return "Traveler"
	}
	return user.DisplayName
}
