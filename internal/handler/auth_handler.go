package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studybuddy/internal/auth"
	"studybuddy/internal/service"
)

var accessTokenSeconds = int(auth.AccessTokenExpiry.Seconds())

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request. The refresh token is optional;
// when given it is revoked together with the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterResponse carries the id of the new account.
type RegisterResponse struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// AuthResponse is returned by login and refresh. Login fills every field;
// refresh only rotates the access token.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       uint   `json:"user_id,omitempty"`
	Email        string `json:"email,omitempty"`
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Email and password"
// @Success 201 {object} RegisterResponse
// @Failure 400,409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{UserID: user.ID, Email: user.Email})
}

// Login godoc
// @Summary Open a study workspace
// @Description Every login starts an empty conversation; tokens are bound to it.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Email and password"
// @Success 200 {object} AuthResponse
// @Failure 400,401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    accessTokenSeconds,
		UserID:       user.ID,
		Email:        user.Email,
	})
}

// Refresh godoc
// @Summary Issue a new access token for the same workspace
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400,401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
		ExpiresIn:   accessTokenSeconds,
	})
}

// Logout godoc
// @Summary Revoke tokens and discard the workspace
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest false "Refresh token to revoke"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), claimsFrom(c), req.RefreshToken); err != nil {
		return fail(err)
	}

	return c.NoContent(http.StatusNoContent)
}
