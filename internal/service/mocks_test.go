package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studybuddy/internal/ai"
	"studybuddy/internal/auth"
	"studybuddy/internal/extract"
	"studybuddy/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateEmail(ctx context.Context, id uint, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCredentials(ctx context.Context, id uint, email, passwordHash string) error {
	args := m.Called(ctx, id, email, passwordHash)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, record auth.RefreshRecord, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, record, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*auth.RefreshRecord, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.RefreshRecord), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// fakeGenerator counts started chats and answers from a script.
type fakeGenerator struct {
	started int
	chat    *fakeChat
}

func (g *fakeGenerator) StartChat() ai.Conversation {
	g.started++
	return g.chat
}

type fakeChat struct {
	prompts []string
	answer  func(prompt string) (string, error)
}

func (c *fakeChat) Send(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer(prompt)
}

type fakeExtractor struct {
	doc extract.Document
	err error
}

func (f fakeExtractor) Extract(context.Context, []byte) (extract.Document, error) {
	return f.doc, f.err
}
