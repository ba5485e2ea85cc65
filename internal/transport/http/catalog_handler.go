package http

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func RegisterCatalog(api *echo.Group, catalog *service.CatalogService) {
	handler := &CatalogHandler{catalog: catalog}

	api.GET("/catalog/destinations", handler.listDestinations)
	api.GET("/catalog/activity-types", handler.listActivityTypes)
}

func (h *CatalogHandler) listDestinations(c echo.Context) error {
	destinations, err := h.catalog.FeaturedDestinations(c.Request().Context())
	if err != nil {
		log.Printf("catalog: list destinations: %v", err)
		return c.JSON(http.StatusBadGateway, util.Error("unable to load destinations"))
	}
	return c.JSON(http.StatusOK, util.Data("destinations", destinations))
}

func (h *CatalogHandler) listActivityTypes(c echo.Context) error {
	activities, err := h.catalog.ActivityTypes(c.Request().Context())
	if err != nil {
		log.Printf("catalog: list activity types: %v", err)
		return c.JSON(http.StatusBadGateway, util.Error("unable to load activity types"))
	}
	return c.JSON(http.StatusOK, util.Data("activityTypes", activities))
}
