package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studybuddy/internal/cache"
)

const (
	refreshTokenKeyPrefix = "refresh_token:"
	accessTokenKeyPrefix  = "blacklist:access_token:"
)

// ErrRefreshTokenNotFound is returned when a refresh token has no stored record.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshRecord is what Redis keeps for an issued refresh token.
type RefreshRecord struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	WorkspaceID string `json:"wsid"`
}

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, record RefreshRecord, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (*RefreshRecord, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore handles storage and retrieval of tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token record in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, record RefreshRecord, ttl time.Duration) error {
	if err := s.cache.SetJSON(ctx, refreshTokenKeyPrefix+tokenID, record, ttl); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken retrieves a refresh token record from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*RefreshRecord, error) {
	var record RefreshRecord
	if !s.cache.GetJSON(ctx, refreshTokenKeyPrefix+tokenID, &record) {
		return nil, ErrRefreshTokenNotFound
	}
	return &record, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}

// BlacklistAccessToken adds an access token to the blacklist until it expires.
func (s *TokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, accessTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsAccessTokenBlacklisted checks if an access token is blacklisted.
func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, accessTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil // Not blacklisted if error (fail safe)
	}
	return data != nil, nil
}
