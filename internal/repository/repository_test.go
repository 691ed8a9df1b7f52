package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"studybuddy/internal/config"
	"studybuddy/internal/db"
	"studybuddy/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func createUser(t *testing.T, repo UserRepository, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupDB(t))
	ctx := context.Background()

	user := createUser(t, repo, "a@example.com")

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)
	assert.Nil(t, byID.ProfilePicture)

	byEmail, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupDB(t))
	ctx := context.Background()

	first := createUser(t, repo, "dup@example.com")

	err := repo.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	stored, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", stored.PasswordHash)
}

func TestUserRepository_UpdateEmailKeepsPassword(t *testing.T) {
	repo := NewUserRepository(setupDB(t))
	ctx := context.Background()
	user := createUser(t, repo, "old@example.com")

	require.NoError(t, repo.UpdateEmail(ctx, user.ID, "x@new.com"))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "x@new.com", stored.Email)
	assert.Equal(t, "hash", stored.PasswordHash)
}

func TestUserRepository_UpdateCredentials(t *testing.T) {
	repo := NewUserRepository(setupDB(t))
	ctx := context.Background()
	user := createUser(t, repo, "old@example.com")
	createUser(t, repo, "taken@example.com")

	require.NoError(t, repo.UpdateCredentials(ctx, user.ID, "new@example.com", "new-hash"))
	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", stored.Email)
	assert.Equal(t, "new-hash", stored.PasswordHash)

	err = repo.UpdateEmail(ctx, user.ID, "taken@example.com")
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestStudySessionRepository_ListInInsertionOrder(t *testing.T) {
	gormDB := setupDB(t)
	users := NewUserRepository(gormDB)
	repo := NewStudySessionRepository(gormDB)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	late := time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
	early := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &model.StudySession{UserID: owner.ID, Topic: "Go", ScheduledTime: late}))
	require.NoError(t, repo.Create(ctx, &model.StudySession{UserID: other.ID, Topic: "Rust", ScheduledTime: early}))
	require.NoError(t, repo.Create(ctx, &model.StudySession{UserID: owner.ID, Topic: "SQL", ScheduledTime: early}))

	sessions, err := repo.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "Go", sessions[0].Topic)
	assert.Equal(t, "SQL", sessions[1].Topic)
	assert.False(t, sessions[0].Completed)
	assert.True(t, sessions[0].ScheduledTime.Equal(late))

	empty, err := repo.ListByUser(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStudySessionRepository_MarkCompletedTwice(t *testing.T) {
	gormDB := setupDB(t)
	users := NewUserRepository(gormDB)
	repo := NewStudySessionRepository(gormDB)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com")
	session := &model.StudySession{UserID: owner.ID, Topic: "Go", ScheduledTime: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, session))

	require.NoError(t, repo.MarkCompleted(ctx, session.ID))
	require.NoError(t, repo.MarkCompleted(ctx, session.ID))

	stored, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)

	_, err = repo.FindByID(ctx, 4242)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudySessionRepository_RequiresExistingUser(t *testing.T) {
	repo := NewStudySessionRepository(setupDB(t))

	err := repo.Create(context.Background(), &model.StudySession{UserID: 77, Topic: "Go", ScheduledTime: time.Now()})
	assert.Error(t, err)
}
