package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "studybuddy/internal/errors"
	"studybuddy/internal/logger"
	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

const (
	// DateLayout is the accepted scheduled date format.
	DateLayout     = "2006-01-02"
	scheduleModule = "schedule"
)

var clockLayouts = []string{"15:04", "15:04:05"}

// ScheduleService creates and completes study sessions.
type ScheduleService interface {
	Schedule(ctx context.Context, userID uint, topic, date, clock string) (*model.StudySession, error)
	List(ctx context.Context, userID uint) ([]model.StudySession, error)
	Complete(ctx context.Context, userID, sessionID uint) error
}

type scheduleService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.StudySessionRepository
	loc         *time.Location
	log         logger.ILogger
}

// NewScheduleService creates a scheduling service that interprets dates in loc.
func NewScheduleService(
	userRepo repository.UserRepository,
	sessionRepo repository.StudySessionRepository,
	loc *time.Location,
	log logger.ILogger,
) ScheduleService {
	if loc == nil {
		loc = time.UTC
	}
	return &scheduleService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		loc:         loc,
		log:         log,
	}
}

// Schedule combines date and clock into one timestamp and stores a pending session.
func (s *scheduleService) Schedule(ctx context.Context, userID uint, topic, date, clock string) (*model.StudySession, error) {
	at, err := combine(date, clock, s.loc)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	session := &model.StudySession{
		UserID:        userID,
		Topic:         topic,
		ScheduledTime: at,
		Completed:     false,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create study session: %w", err)
	}

	s.log.Info(scheduleModule, "session scheduled", map[string]interface{}{
		"user_id":    userID,
		"session_id": session.ID,
		"at":         at.Format(time.RFC3339),
	})
	return session, nil
}

// List returns the user's sessions in insertion order.
func (s *scheduleService) List(ctx context.Context, userID uint) ([]model.StudySession, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	return sessions, nil
}

// Complete marks a session done. Sessions of other users are reported as
// not found. Completing twice is a no-op.
func (s *scheduleService) Complete(ctx context.Context, userID, sessionID uint) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSessionNotFound
		}
		return fmt.Errorf("find study session: %w", err)
	}
	if session.UserID != userID {
		return apperrors.ErrSessionNotFound
	}
	if session.Completed {
		return nil
	}

	if err := s.sessionRepo.MarkCompleted(ctx, sessionID); err != nil {
		return fmt.Errorf("complete study session: %w", err)
	}
	s.log.Info(scheduleModule, "session completed", map[string]interface{}{"user_id": userID, "session_id": sessionID})
	return nil
}

func combine(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", apperrors.ErrInvalidSchedule, date)
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: time %q", apperrors.ErrInvalidSchedule, clock)
}
