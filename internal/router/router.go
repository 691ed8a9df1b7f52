package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"studybuddy/internal/auth"
	"studybuddy/internal/config"
	"studybuddy/internal/handler"
	"studybuddy/internal/logger"
	"studybuddy/internal/workspace"
)

// Deps is everything the routes need beyond the handlers themselves.
type Deps struct {
	Config     *config.Config
	Log        logger.ILogger
	JWT        *auth.JWTService
	Tokens     auth.TokenStoreInterface
	Workspaces *workspace.Store
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	deps Deps,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	sessionHandler *handler.SessionHandler,
	chatHandler *handler.ChatHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(deps.Config.UploadLimit))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Token only; logout must work even after the workspace expired
	authed := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey:   handler.ClaimsContextKey,
		TokenLookup:  "header:" + echo.HeaderAuthorization + ":Bearer ",
		ErrorHandler: handler.TokenErrorHandler,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return deps.JWT.ValidateToken(token)
		},
	}))
	authed.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require a live workspace)
	secured := authed.Group("", handler.RequireWorkspace(deps.Workspaces, deps.Tokens))

	secured.GET("/profile", profileHandler.GetProfile)
	secured.PUT("/profile", profileHandler.UpdateProfile)

	secured.GET("/sessions", sessionHandler.List)
	secured.POST("/sessions", sessionHandler.Schedule)
	secured.POST("/sessions/:id/complete", sessionHandler.Complete)

	secured.GET("/chat", chatHandler.GetChat)
	secured.POST("/chat/ask", chatHandler.Ask)
	secured.POST("/chat/roadmap", chatHandler.Roadmap)
	secured.POST("/chat/documents", chatHandler.UploadDocument)
}

func requestLogger(log logger.ILogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			details := map[string]interface{}{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			}
			switch {
			case v.Status >= http.StatusInternalServerError:
				details["error"] = v.Error
				log.Error("http", "request failed", details)
			case v.Error != nil:
				log.Warn("http", "request rejected", details)
			default:
				log.Info("http", "request", details)
			}
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
