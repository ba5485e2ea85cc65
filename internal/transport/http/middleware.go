package http

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

const (
	SessionCookieName = "ecotravel_session"

	contextSessionKey = "session"
	contextCookieKey  = "session_cookie"
)

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Secure bool
}

// LoadSession gives every request its own Session restored from the session
// cookie. While the request runs, a profile change on the session re-issues
// the cookie and a sign-out clears it.
func LoadSession(auth *service.AuthService, opts CookieOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := service.NewSession()
			cookieValue := ""
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				cookieValue = cookie.Value
			}

			ctx := c.Request().Context()
			if err := auth.Restore(ctx, session, cookieValue); err != nil {
				if cookieValue != "" {
					if !errors.Is(err, service.ErrUnauthenticated) {
						log.Printf("session: restore %s: %v", util.ShortFingerprint(cookieValue), err)
					}
					clearSessionCookie(c, opts)
					cookieValue = ""
				}
			}

			c.Set(contextSessionKey, session)
			c.Set(contextCookieKey, cookieValue)

			previous := session.State()
			initial := true
			unsubscribe := session.Subscribe(func(state service.SessionState) {
				if initial {
					initial = false
					return
				}
				defer func() { previous = state }()
				current, _ := c.Get(contextCookieKey).(string)
				switch {
				case !state.IsAuthenticated:
					if previous.IsAuthenticated {
						clearSessionCookie(c, opts)
						c.Set(contextCookieKey, "")
					}
				case previous.IsAuthenticated && sameUser(previous.User, state.User):
					value, expiresAt, err := auth.Reissue(ctx, session, current)
					if err != nil {
						log.Printf("session: reissue for %s: %v", state.User.ID, err)
						return
					}
					setSessionCookie(c, opts, value, expiresAt)
					c.Set(contextCookieKey, value)
				}
			})
			defer unsubscribe()

			return next(c)
		}
	}
}

func sameUser(a, b *domain.User) bool {
	return a != nil && b != nil && a.ID == b.ID
}

// RequireAuth sends anonymous visitors of a page to the login page and back
// again afterwards.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user, ok := CurrentUser(c); !ok || user == nil {
				return c.Redirect(http.StatusSeeOther, "/login?redirect="+url.QueryEscape(c.Request().URL.RequestURI()))
			}
			return next(c)
		}
	}
}

// RequireAPIAuth is RequireAuth for the JSON API.
func RequireAPIAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user, ok := CurrentUser(c); !ok || user == nil {
				return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
			}
			return next(c)
		}
	}
}

func CurrentSession(c echo.Context) *service.Session {
	session, _ := c.Get(contextSessionKey).(*service.Session)
	return session
}

func CurrentUser(c echo.Context) (*domain.User, bool) {
	session := CurrentSession(c)
	if session == nil {
		return nil, false
	}
	state := session.State()
	if !state.IsAuthenticated || state.User == nil {
		return nil, false
	}
	return state.User, true
}

func currentCookie(c echo.Context) string {
	value, _ := c.Get(contextCookieKey).(string)
	return value
}

func setSessionCookie(c echo.Context, opts CookieOptions, value string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, opts CookieOptions) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// homePath is where a signed-in user lands by default.
func homePath(user *domain.User) string {
	if user != nil && user.Role.IsStaff() {
		return "/consultant"
	}
	return "/dashboard"
}

// safeRedirect keeps post-login redirects on this site.
func safeRedirect(raw string, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.IsAbs() || parsed.Host != "" {
		return fallback
	}
	return raw
}
