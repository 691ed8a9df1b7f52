package repository

import (
	"context"

	"gorm.io/gorm"

	"studybuddy/internal/model"
)

// StudySessionRepository defines study session persistence operations.
type StudySessionRepository interface {
	Create(ctx context.Context, session *model.StudySession) error
	FindByID(ctx context.Context, id uint) (*model.StudySession, error)
	ListByUser(ctx context.Context, userID uint) ([]model.StudySession, error)
	MarkCompleted(ctx context.Context, id uint) error
}

type studySessionRepository struct {
	db *gorm.DB
}

// NewStudySessionRepository creates a new study session repository.
func NewStudySessionRepository(db *gorm.DB) StudySessionRepository {
	return &studySessionRepository{db: db}
}

// Create inserts a session row.
func (r *studySessionRepository) Create(ctx context.Context, session *model.StudySession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByID finds a session by ID.
func (r *studySessionRepository) FindByID(ctx context.Context, id uint) (*model.StudySession, error) {
	var session model.StudySession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// ListByUser returns a user's sessions in insertion order.
func (r *studySessionRepository) ListByUser(ctx context.Context, userID uint) ([]model.StudySession, error) {
	sessions := make([]model.StudySession, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// MarkCompleted sets completed = true. Callers check existence first: MySQL
// reports zero affected rows for an already completed session.
func (r *studySessionRepository) MarkCompleted(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.StudySession{}).
		Where("id = ?", id).
		Update("completed", true).Error
}
