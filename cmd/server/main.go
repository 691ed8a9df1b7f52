package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"studybuddy/docs"
	"studybuddy/internal/ai"
	"studybuddy/internal/auth"
	"studybuddy/internal/cache"
	"studybuddy/internal/config"
	"studybuddy/internal/db"
	"studybuddy/internal/extract"
	"studybuddy/internal/handler"
	"studybuddy/internal/logger"
	"studybuddy/internal/ocr"
	"studybuddy/internal/repository"
	"studybuddy/internal/router"
	"studybuddy/internal/service"
	"studybuddy/internal/workspace"
)

const geminiTimeout = 60 * time.Second

// @title Study Buddy API
// @version 1.0
// @description Study assistant API with AI chat, learning roadmaps, document text extraction and study session scheduling.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logger.NewZapLogger(cfg.LogFilePath, cfg.IsProduction())
	defer appLog.Sync()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		appLog.Warn("main", "redis unreachable, refresh tokens will not survive", map[string]interface{}{
			"addr":  cfg.RedisAddr,
			"error": err.Error(),
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewStudySessionRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	workspaces := workspace.NewStore(cfg.WorkspaceTTL)

	// Initialize collaborators
	gemini := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, &http.Client{Timeout: geminiTimeout})
	extractor := extract.New(extract.PDFReader{}, ocr.NewTesseract())

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, workspaces, appLog)
	userService := service.NewUserService(userRepo, cacheClient, appLog)
	scheduleService := service.NewScheduleService(userRepo, sessionRepo, cfg.Location(), appLog)
	chatService := service.NewChatService(gemini, extractor, appLog)
	viewService := service.NewViewService(userService, scheduleService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(userService, viewService)
	sessionHandler := handler.NewSessionHandler(scheduleService, viewService)
	chatHandler := handler.NewChatHandler(chatService, viewService)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		router.Deps{
			Config:     cfg,
			Log:        appLog,
			JWT:        jwtService,
			Tokens:     tokenStore,
			Workspaces: workspaces,
		},
		authHandler,
		profileHandler,
		sessionHandler,
		chatHandler,
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	appLog.Info("main", "swagger documentation available", map[string]interface{}{
		"url": "http://" + docs.SwaggerInfo.Host + "/swagger/index.html",
	})

	go func() {
		addr := ":" + cfg.ServerPort
		appLog.Info("main", "server starting", map[string]interface{}{"addr": addr, "db_driver": cfg.DBDriver})
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		appLog.Error("main", "shutdown failed", map[string]interface{}{"error": err})
	}
	appLog.Info("main", "server stopped", nil)
}
