package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"studybuddy/internal/cache"
	apperrors "studybuddy/internal/errors"
	"studybuddy/internal/logger"
	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes the current user's identity and profile updates.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, newEmail, newPassword string) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	log   logger.ILogger
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, log logger.ILogger) UserService {
	return &userService{repo: repo, cache: cache, log: log}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// cachedUser mirrors model.User without hiding the password hash from JSON.
type cachedUser struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	ProfilePicture *string   `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached cachedUser
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &model.User{
			ID:             cached.ID,
			Email:          cached.Email,
			ProfilePicture: cached.ProfilePicture,
			CreatedAt:      cached.CreatedAt,
			UpdatedAt:      cached.UpdatedAt,
		}, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	_ = s.cache.SetJSON(ctx, s.cacheKey(id), cachedUser{
		ID:             user.ID,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}, userCacheTTL)
	return user, nil
}

// UpdateProfile always writes the email; the password only changes when a
// non-empty newPassword is given.
func (s *userService) UpdateProfile(ctx context.Context, id uint, newEmail, newPassword string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	owner, err := s.repo.FindByEmail(ctx, newEmail)
	if err == nil && owner.ID != id {
		return apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if newPassword == "" {
		err = s.repo.UpdateEmail(ctx, id, newEmail)
	} else {
		var hashed string
		if hashed, err = hashPassword(newPassword); err != nil {
			return err
		}
		err = s.repo.UpdateCredentials(ctx, id, newEmail, hashed)
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	s.log.Info("profile", "profile updated", map[string]interface{}{
		"user_id":          id,
		"password_changed": newPassword != "",
	})
	return nil
}
