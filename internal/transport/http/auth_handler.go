package http

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

const callbackPath = "/auth/callback"

type AuthOptions struct {
	PublicBaseURL string
	// GoogleClientID enables the Google sign-in page at /auth/google.
	GoogleClientID string
	Cookies        CookieOptions
}

type AuthHandler struct {
	auth *service.AuthService
	opts AuthOptions
}

type googleSignInView struct {
	ClientID    string
	RedirectURL string
}

type loginErrorView struct {
	Message string
	Retry   string
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, opts AuthOptions, limiter echo.MiddlewareFunc) {
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	handler := &AuthHandler{auth: auth, opts: opts}

	e.GET("/login", handler.login, limiter)
	e.GET(callbackPath, handler.callback, limiter)
	if opts.GoogleClientID != "" {
		e.GET(service.GoogleSignInPath, handler.googleSignIn)
		e.POST(service.GoogleSignInPath, handler.googleCallback, limiter)
	}
	e.GET("/logout", handler.logout)
	e.POST("/logout", handler.logout)
}

func (h *AuthHandler) login(c echo.Context) error {
	next := safeRedirect(c.QueryParam("redirect"), "")
	if user, ok := CurrentUser(c); ok {
		return c.Redirect(http.StatusSeeOther, safeRedirect(next, homePath(user)))
	}
	return c.Redirect(http.StatusSeeOther, h.auth.LoginURL(h.callbackURL(next)))
}

func (h *AuthHandler) callback(c echo.Context) error {
	token := c.QueryParam("token")
	if strings.TrimSpace(token) == "" {
		token = c.QueryParam("access_token")
	}
	return h.finishLogin(c, token, safeRedirect(c.QueryParam("redirect"), ""))
}

func (h *AuthHandler) googleSignIn(c echo.Context) error {
	view := googleSignInView{
		ClientID:    h.opts.GoogleClientID,
		RedirectURL: c.QueryParam("redirect_url"),
	}
	return c.Render(http.StatusOK, "google_signin.html", newPage(c, "Sign in", view))
}

func (h *AuthHandler) googleCallback(c echo.Context) error {
	return h.finishLogin(c, c.FormValue("credential"), nextFromRedirectURL(c.FormValue("redirect_url")))
}

func (h *AuthHandler) finishLogin(c echo.Context, token, next string) error {
	session := CurrentSession(c)
	cookie, expiresAt, err := h.auth.CompleteLogin(c.Request().Context(), session, token)
	if err != nil {
		log.Printf("auth: complete login: %v", err)
		status := http.StatusBadGateway
		message := "We could not reach the sign-in service. Please try again in a moment."
		if errors.Is(err, service.ErrInvalidLoginToken) {
			status = http.StatusUnauthorized
			message = "Your sign-in link is invalid or has expired."
		}
		retry := "/login"
		if next != "" {
			retry += "?redirect=" + url.QueryEscape(next)
		}
		return c.Render(status, "login_error.html", newPage(c, "Sign in failed", loginErrorView{Message: message, Retry: retry}))
	}

	setSessionCookie(c, h.opts.Cookies, cookie, expiresAt)
	c.Set(contextCookieKey, cookie)
	user, _ := CurrentUser(c)
	log.Printf("auth: signed in user %s session %s", user.ID, util.ShortFingerprint(cookie))
	return c.Redirect(http.StatusSeeOther, safeRedirect(next, homePath(user)))
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), CurrentSession(c), currentCookie(c)); err != nil {
		log.Printf("auth: logout: %v", err)
	}
	clearSessionCookie(c, h.opts.Cookies)
	return c.Redirect(http.StatusSeeOther, h.auth.LogoutURL(h.opts.PublicBaseURL+"/"))
}

func (h *AuthHandler) callbackURL(next string) string {
	target := h.opts.PublicBaseURL + callbackPath
	if next != "" {
		target += "?redirect=" + url.QueryEscape(next)
	}
	return target
}

// nextFromRedirectURL extracts the page to land on from the redirect_url the
// sign-in page was opened with. That is normally our own callback URL.
func nextFromRedirectURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	if parsed.Path == callbackPath {
		return safeRedirect(parsed.Query().Get("redirect"), "")
	}
	if parsed.IsAbs() {
		return ""
	}
	return safeRedirect(raw, "")
}
