package http

import (
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/blink-new/ecotravel-booking-platform/internal/content"
	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

const (
	csrfCookieName  = "_csrf"
	csrfHeaderName  = "X-CSRF-Token"
	loginLimitReset = 3 * time.Minute
)

type RouterConfig struct {
	AllowOrigins   []string
	LoginRateLimit float64
	Auth           AuthOptions
}

// Services are the application services the routes call into.
type Services struct {
	Auth       *service.AuthService
	Trips      *service.TripRequestService
	Dashboards *service.DashboardService
	Catalog    *service.CatalogService
	Pages      *content.Pages
}

func NewRouter(cfg RouterConfig, svc Services) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	allowCredentials := true
	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	registerLogging(e)

	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderOrigin,
			echo.HeaderXRequestedWith,
			csrfHeaderName,
		},
		AllowCredentials: allowCredentials,
	}))
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + csrfHeaderName + ",form:_csrf",
		CookieName:     csrfCookieName,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Auth.Cookies.Secure,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.Use(LoadSession(svc.Auth, cfg.Auth.Cookies))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	pages := e.Group("", RequireAuth())
	api := e.Group("/api/v1", RequireAPIAuth())

	RegisterAuth(e, svc.Auth, cfg.Auth, loginRateLimiter(cfg.LoginRateLimit))
	RegisterDashboard(pages, api, svc.Dashboards)
	RegisterTripRequests(pages, api, svc.Trips, svc.Catalog)
	RegisterCatalog(api, svc.Catalog)
	RegisterProfile(pages, api, svc.Auth)
	RegisterSwagger(e)
	RegisterPages(e, pages, svc.Pages)
	return e, nil
}

// loginRateLimiter throttles sign-in attempts per client IP. perSecond <= 0
// disables the limit.
func loginRateLimiter(perSecond float64) echo.MiddlewareFunc {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	burst := int(math.Ceil(perSecond))
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     burst,
			ExpiresIn: loginLimitReset,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, util.Error("too many sign-in attempts, please wait a moment"))
		},
	})
}
