package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"studybuddy/internal/auth"
	"studybuddy/internal/config"
	"studybuddy/internal/db"
	apperrors "studybuddy/internal/errors"
	"studybuddy/internal/logger"
	"studybuddy/internal/repository"
	"studybuddy/internal/service"
	"studybuddy/internal/workspace"
)

// Fixture is the seed file layout.
type Fixture struct {
	Users []SeedUser `json:"users"`
}

// SeedUser is one account with its scheduled sessions.
type SeedUser struct {
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Sessions []SeedSession `json:"sessions"`
}

// SeedSession is one study session; Date is YYYY-MM-DD and Time is HH:MM.
type SeedSession struct {
	Topic     string `json:"topic"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Completed bool   `json:"completed"`
}

func main() {
	path := flag.String("fixture", "cmd/seed/fixture.json", "path to the JSON seed fixture")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	fixture, err := readFixture(*path)
	if err != nil {
		log.Fatalf("Failed to read fixture: %v", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	appLog := logger.NewZapLogger(cfg.LogFilePath, cfg.IsProduction())
	defer appLog.Sync()

	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewStudySessionRepository(gormDB)

	// Registration never touches tokens or workspaces.
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret), auth.NewTokenStore(nil), workspace.NewStore(0), appLog)
	scheduleService := service.NewScheduleService(userRepo, sessionRepo, cfg.Location(), appLog)

	users, sessions, skipped := seed(context.Background(), authService, scheduleService, fixture)
	log.Printf("Seed completed: %d users created, %d sessions scheduled, %d users skipped", users, sessions, skipped)
}

func readFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &fixture, nil
}

// seed registers every user and schedules their sessions. Users whose email
// already exists are skipped with their sessions, so re-running is safe.
func seed(ctx context.Context, authService service.AuthService, schedule service.ScheduleService, fixture *Fixture) (users, sessions, skipped int) {
	for _, u := range fixture.Users {
		user, err := authService.Register(ctx, u.Email, u.Password)
		if err != nil {
			if errors.Is(err, apperrors.ErrDuplicateEmail) {
				log.Printf("Skipping %s: already registered", u.Email)
			} else {
				log.Printf("Failed to register %s: %v", u.Email, err)
			}
			skipped++
			continue
		}
		users++

		for _, s := range u.Sessions {
			session, err := schedule.Schedule(ctx, user.ID, s.Topic, s.Date, s.Time)
			if err != nil {
				log.Printf("Failed to schedule %q for %s: %v", s.Topic, u.Email, err)
				continue
			}
			if s.Completed {
				if err := schedule.Complete(ctx, user.ID, session.ID); err != nil {
					log.Printf("Failed to complete %q for %s: %v", s.Topic, u.Email, err)
				}
			}
			sessions++
		}
	}
	return users, sessions, skipped
}
