package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/content"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

type placeholderView struct {
	Heading string
	Message string
}

var placeholders = map[string]placeholderView{
	"/trips":                {Heading: "My Trips", Message: "Trips page coming soon..."},
	"/messages":             {Heading: "Messages", Message: "Messages page coming soon..."},
	"/bookings":             {Heading: "Bookings", Message: "Bookings page coming soon..."},
	"/settings":             {Heading: "Settings", Message: "Settings page coming soon..."},
	"/consultant":           {Heading: "Consultant Dashboard", Message: "Consultant dashboard coming soon..."},
	"/consultant/trips":     {Heading: "Trip Management", Message: "Trip management coming soon..."},
	"/consultant/customers": {Heading: "Customers", Message: "Customer management coming soon..."},
	"/consultant/messages":  {Heading: "Messages", Message: "Consultant messages coming soon..."},
	"/consultant/quotes":    {Heading: "Quotes", Message: "Quote management coming soon..."},
}

// RegisterPages serves the static public pages and the "coming soon" pages
// behind sign-in.
func RegisterPages(e *echo.Echo, protected *echo.Group, pages *content.Pages) {
	roadmap := func(c echo.Context) error {
		return c.Render(http.StatusOK, "roadmap.html", newPage(c, pages.Roadmap.Title, pages.Roadmap))
	}
	e.GET("/", roadmap)
	e.GET("/landing", func(c echo.Context) error {
		return c.Render(http.StatusOK, "landing.html", newPage(c, pages.Landing.Brand, pages.Landing))
	})
	e.GET("/developer-roadmap", func(c echo.Context) error {
		return c.Render(http.StatusOK, "developer_roadmap.html", newPage(c, pages.DeveloperRoadmap.Title, pages.DeveloperRoadmap))
	})

	for path, view := range placeholders {
		view := view
		protected.GET(path, func(c echo.Context) error {
			return c.Render(http.StatusOK, "placeholder.html", newPage(c, view.Heading, view))
		})
	}

	// Unknown pages fall back to the roadmap; unknown API paths stay 404.
	e.GET("/*", func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			return c.JSON(http.StatusNotFound, util.Error("not found"))
		}
		return roadmap(c)
	})
}
