package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"studybuddy/internal/auth"
	"studybuddy/internal/errors"
	"studybuddy/internal/workspace"
)

const (
	// ClaimsContextKey is where the JWT middleware stores *auth.Claims.
	ClaimsContextKey    = "user"
	workspaceContextKey = "workspace"
)

// RequireWorkspace resolves the validated token to its live workspace. A
// revoked token or a closed workspace means the caller is logged out.
func RequireWorkspace(store *workspace.Store, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
			if !ok {
				return unauthorized("invalid token", "INVALID_TOKEN")
			}

			revoked, _ := tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
			if revoked {
				return unauthorized("token revoked", "TOKEN_REVOKED")
			}

			ws, err := store.Get(claims.WorkspaceID)
			if err != nil || ws.UserID != claims.UserID {
				return fail(errors.ErrWorkspaceExpired)
			}

			c.Set(workspaceContextKey, ws)
			return next(c)
		}
	}
}

// TokenErrorHandler shapes echo-jwt failures like every other error body.
func TokenErrorHandler(c echo.Context, err error) error {
	return unauthorized("missing or invalid token", "INVALID_TOKEN")
}

func unauthorized(message, code string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func claimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims
}

func workspaceFrom(c echo.Context) *workspace.Workspace {
	ws, _ := c.Get(workspaceContextKey).(*workspace.Workspace)
	return ws
}
