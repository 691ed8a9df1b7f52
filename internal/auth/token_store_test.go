package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/cache"
)

func newStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	return NewTokenStore(cache.New(srv.Addr(), "", 0)), srv
}

func TestTokenStore_RefreshTokenLifecycle(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	record := RefreshRecord{UserID: 3, Email: "c@example.com", WorkspaceID: "ws-3"}

	require.NoError(t, store.StoreRefreshToken(ctx, "tid", record, time.Hour))

	got, err := store.GetRefreshToken(ctx, "tid")
	require.NoError(t, err)
	assert.Equal(t, record, *got)

	require.NoError(t, store.DeleteRefreshToken(ctx, "tid"))
	_, err = store.GetRefreshToken(ctx, "tid")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_Blacklist(t *testing.T) {
	store, srv := newStore(t)
	ctx := context.Background()

	listed, err := store.IsAccessTokenBlacklisted(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, store.BlacklistAccessToken(ctx, "jti", time.Minute))
	listed, _ = store.IsAccessTokenBlacklisted(ctx, "jti")
	assert.True(t, listed)

	srv.FastForward(2 * time.Minute)
	listed, _ = store.IsAccessTokenBlacklisted(ctx, "jti")
	assert.False(t, listed)
}

func TestTokenStore_BlacklistSkipsExpiredTokens(t *testing.T) {
	store, srv := newStore(t)

	require.NoError(t, store.BlacklistAccessToken(context.Background(), "old", 0))
	assert.False(t, srv.Exists(accessTokenKeyPrefix+"old"))
}
