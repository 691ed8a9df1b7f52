package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studybuddy/internal/auth"
	apperrors "studybuddy/internal/errors"
	"studybuddy/internal/logger"
	"studybuddy/internal/model"
	"studybuddy/internal/repository"
	"studybuddy/internal/workspace"
)

const (
	bcryptCost = 10
	authModule = "auth"
)

// AuthService handles registration and the LoggedOut/LoggedIn transitions.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	workspaces *workspace.Store
	log        logger.ILogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	workspaces *workspace.Store,
	log logger.ILogger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		workspaces: workspaces,
		log:        log,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info(authModule, "user registered", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Authenticate returns the user whose email and password both match.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		// burn the same time as a real comparison
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates, opens a workspace and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.log.Warn(authModule, "login rejected", nil)
		}
		return "", "", nil, err
	}

	ws := s.workspaces.Open(user.ID)
	defer func() {
		if err != nil {
			s.workspaces.Close(ws.ID)
		}
	}()

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Email, ws.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email, ws.ID)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	record := auth.RefreshRecord{UserID: user.ID, Email: user.Email, WorkspaceID: ws.ID}
	if err = s.tokenStore.StoreRefreshToken(ctx, tokenID, record, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.log.Info(authModule, "user logged in", map[string]interface{}{"user_id": user.ID, "workspace_id": ws.ID})
	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token for
// the same workspace.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	record, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if record.UserID != claims.UserID || record.WorkspaceID != claims.WorkspaceID {
		return "", apperrors.ErrInvalidRefreshToken
	}

	if _, err := s.workspaces.Get(claims.WorkspaceID); err != nil {
		_ = s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.WorkspaceID)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes both tokens and drops the workspace with its conversation.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error {
	if refreshToken != "" {
		refreshClaims, err := s.jwtService.ValidateToken(refreshToken)
		if err != nil || refreshClaims.WorkspaceID != claims.WorkspaceID {
			return apperrors.ErrInvalidRefreshToken
		}
		if err := s.tokenStore.DeleteRefreshToken(ctx, refreshClaims.ID); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
	}

	if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, claims.Remaining()); err != nil {
		return fmt.Errorf("blacklist access token: %w", err)
	}
	s.workspaces.Close(claims.WorkspaceID)

	s.log.Info(authModule, "user logged out", map[string]interface{}{"user_id": claims.UserID, "workspace_id": claims.WorkspaceID})
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	})
	return dummy
}
