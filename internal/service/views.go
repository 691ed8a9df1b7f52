package service

import (
	"context"
	"time"

	"studybuddy/internal/model"
	"studybuddy/internal/workspace"
)

// SessionView is one row of the scheduled sessions list.
type SessionView struct {
	ID            uint      `json:"id"`
	Topic         string    `json:"topic"`
	ScheduledTime time.Time `json:"scheduled_time"`
	Completed     bool      `json:"completed"`
	Status        string    `json:"status"`
	CanComplete   bool      `json:"can_complete"`
}

// ProfileView is the full profile screen.
type ProfileView struct {
	UserID         uint          `json:"user_id"`
	Email          string        `json:"email"`
	ProfilePicture *string       `json:"profile_picture,omitempty"`
	Sessions       []SessionView `json:"sessions"`
}

// ChatView is the full chat screen.
type ChatView struct {
	Conversation []workspace.Entry `json:"conversation"`
	Sessions     []SessionView     `json:"sessions"`
}

// ViewService renders screens from fresh store reads.
type ViewService interface {
	Profile(ctx context.Context, userID uint) (*ProfileView, error)
	Chat(ctx context.Context, ws *workspace.Workspace) (*ChatView, error)
}

type viewService struct {
	users    UserService
	schedule ScheduleService
}

// NewViewService creates a view service.
func NewViewService(users UserService, schedule ScheduleService) ViewService {
	return &viewService{users: users, schedule: schedule}
}

func (s *viewService) Profile(ctx context.Context, userID uint) (*ProfileView, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.schedule.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileView{
		UserID:         user.ID,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		Sessions:       NewSessionViews(sessions),
	}, nil
}

func (s *viewService) Chat(ctx context.Context, ws *workspace.Workspace) (*ChatView, error) {
	sessions, err := s.schedule.List(ctx, ws.UserID)
	if err != nil {
		return nil, err
	}
	return &ChatView{
		Conversation: ws.Conversation(),
		Sessions:     NewSessionViews(sessions),
	}, nil
}

// NewSessionView renders one session row.
func NewSessionView(s model.StudySession) SessionView {
	return SessionView{
		ID:            s.ID,
		Topic:         s.Topic,
		ScheduledTime: s.ScheduledTime,
		Completed:     s.Completed,
		Status:        s.StatusLabel(),
		CanComplete:   !s.Completed,
	}
}

// NewSessionViews renders rows in the given order; never nil.
func NewSessionViews(sessions []model.StudySession) []SessionView {
	out := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSessionView(s))
	}
	return out
}
