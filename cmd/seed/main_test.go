package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/auth"
	"studybuddy/internal/config"
	"studybuddy/internal/db"
	"studybuddy/internal/logger"
	"studybuddy/internal/repository"
	"studybuddy/internal/service"
	"studybuddy/internal/workspace"
)

func TestSeed_IsRerunnable(t *testing.T) {
	gormDB, err := db.Open(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	log := logger.NewNop()
	users := repository.NewUserRepository(gormDB)
	sessions := repository.NewStudySessionRepository(gormDB)
	authService := service.NewAuthService(users, auth.NewJWTService("seed"), auth.NewTokenStore(nil), workspace.NewStore(0), log)
	schedule := service.NewScheduleService(users, sessions, time.UTC, log)

	fixture, err := readFixture("fixture.json")
	require.NoError(t, err)
	ctx := context.Background()

	created, scheduled, skipped := seed(ctx, authService, schedule, fixture)
	assert.Equal(t, 2, created)
	assert.Equal(t, 3, scheduled)
	assert.Equal(t, 0, skipped)

	demo, err := authService.Authenticate(ctx, "demo@example.com", "demo-password")
	require.NoError(t, err)
	list, err := schedule.List(ctx, demo.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Completed)
	assert.False(t, list[1].Completed)

	created, scheduled, skipped = seed(ctx, authService, schedule, fixture)
	assert.Equal(t, 0, created)
	assert.Equal(t, 0, scheduled)
	assert.Equal(t, 2, skipped)
}

func TestReadFixture_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := readFixture(path)
	assert.Error(t, err)
}
