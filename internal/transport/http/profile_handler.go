package http

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blink-new/ecotravel-booking-platform/internal/domain"
	"github.com/blink-new/ecotravel-booking-platform/internal/media"
	"github.com/blink-new/ecotravel-booking-platform/internal/service"
	"github.com/blink-new/ecotravel-booking-platform/internal/util"
)

const avatarField = "avatar"

type ProfileHandler struct {
	auth *service.AuthService
}

type profileView struct {
	DisplayName string
}

// ProfilePatchRequest is the JSON body of PATCH /api/v1/users/me.
type ProfilePatchRequest struct {
	DisplayName *string `json:"displayName,omitempty" example:"Amina Njoroge"`
}

func RegisterProfile(pages, api *echo.Group, auth *service.AuthService) {
	handler := &ProfileHandler{auth: auth}

	pages.GET("/profile", handler.showProfile)
	pages.POST("/profile", handler.updateProfile)
	pages.POST("/profile/avatar", handler.uploadAvatarForm)

	api.GET("/users/me", handler.getMe)
	api.PATCH("/users/me", handler.patchMe)
	api.POST("/users/me/avatar", handler.uploadAvatar)
}

func (h *ProfileHandler) showProfile(c echo.Context) error {
	user, _ := CurrentUser(c)
	page := newPage(c, "Profile", profileView{DisplayName: user.DisplayName})
	if c.QueryParam("updated") != "" {
		page.Notice = "Your profile has been updated."
	}
	return c.Render(http.StatusOK, "profile.html", page)
}

func (h *ProfileHandler) updateProfile(c echo.Context) error {
	name := c.FormValue("displayName")
	_, err := h.auth.UpdateMe(c.Request().Context(), CurrentSession(c), domain.UserPatch{DisplayName: &name})
	if err != nil {
		return h.renderProfileError(c, err, name)
	}
	return c.Redirect(http.StatusSeeOther, "/profile?updated=1")
}

func (h *ProfileHandler) uploadAvatarForm(c echo.Context) error {
	user, _ := CurrentUser(c)
	upload, closeFn, err := avatarUpload(c)
	if err != nil {
		return h.renderProfileError(c, err, user.DisplayName)
	}
	defer closeFn()

	if _, err := h.auth.UploadAvatar(c.Request().Context(), CurrentSession(c), upload); err != nil {
		return h.renderProfileError(c, err, user.DisplayName)
	}
	return c.Redirect(http.StatusSeeOther, "/profile?updated=1")
}

func (h *ProfileHandler) renderProfileError(c echo.Context, err error, displayName string) error {
	status, message := profileError(err)
	if status == http.StatusUnauthorized {
		return c.Redirect(http.StatusSeeOther, "/login?redirect="+url.QueryEscape("/profile"))
	}
	page := newPage(c, "Profile", profileView{DisplayName: displayName})
	page.Error = message
	return c.Render(status, "profile.html", page)
}

func (h *ProfileHandler) getMe(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

func (h *ProfileHandler) patchMe(c echo.Context) error {
	var req ProfilePatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	user, err := h.auth.UpdateMe(c.Request().Context(), CurrentSession(c), domain.UserPatch{DisplayName: req.DisplayName})
	if err != nil {
		status, message := profileError(err)
		return c.JSON(status, util.Error(message))
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

func (h *ProfileHandler) uploadAvatar(c echo.Context) error {
	upload, closeFn, err := avatarUpload(c)
	if err != nil {
		status, message := profileError(err)
		return c.JSON(status, util.FieldError(avatarField, message))
	}
	defer closeFn()

	user, err := h.auth.UploadAvatar(c.Request().Context(), CurrentSession(c), upload)
	if err != nil {
		status, message := profileError(err)
		return c.JSON(status, util.Error(message))
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

var errAvatarMissing = errors.New("avatar file upload required")

func avatarUpload(c echo.Context) (media.Upload, func(), error) {
	fileHeader, err := c.FormFile(avatarField)
	if err != nil {
		return media.Upload{}, nil, errAvatarMissing
	}
	src, err := fileHeader.Open()
	if err != nil {
		return media.Upload{}, nil, errAvatarMissing
	}
	return media.Upload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	}, func() { _ = src.Close() }, nil
}

func profileError(err error) (int, string) {
	switch {
	case errors.Is(err, errAvatarMissing):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, service.ErrProfileValidation), errors.Is(err, service.ErrAvatarValidation):
		return http.StatusUnprocessableEntity, validationMessage(err)
	case errors.Is(err, service.ErrAvatarUnavailable):
		return http.StatusServiceUnavailable, "avatar uploads are not available"
	default:
		log.Printf("profile: update: %v", err)
		return http.StatusBadGateway, "could not update profile"
	}
}

// validationMessage strips the sentinel prefix so users only see the detail.
func validationMessage(err error) string {
	message := err.Error()
	if _, detail, ok := strings.Cut(message, ": "); ok {
		return detail
	}
	return message
}
