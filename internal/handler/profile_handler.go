package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studybuddy/internal/service"
)

// ProfileHandler serves the profile screen.
type ProfileHandler struct {
	userService service.UserService
	views       service.ViewService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(userService service.UserService, views service.ViewService) *ProfileHandler {
	return &ProfileHandler{userService: userService, views: views}
}

// UpdateProfileRequest represents a profile update. An empty password keeps
// the current one.
type UpdateProfileRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// GetProfile godoc
// @Summary Show the current user's profile and sessions
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProfileView
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	view, err := h.views.Profile(c.Request().Context(), claimsFrom(c).UserID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateProfile godoc
// @Summary Change email and optionally password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} service.ProfileView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID := claimsFrom(c).UserID
	if err := h.userService.UpdateProfile(ctx, userID, req.Email, req.Password); err != nil {
		return fail(err)
	}

	view, err := h.views.Profile(ctx, userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}
