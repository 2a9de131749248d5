package toptex

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/infrastructure/cache"
	"go.uber.org/zap"
)

type countingRequester struct {
	calls int
	err   error
}

func (r *countingRequester) RequestToken(_ context.Context, _ Credential) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return fmt.Sprintf("token-%d", r.calls), nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokenManager(requester TokenRequester) (*TokenManager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	manager := NewTokenManager(cache.NewMemoryTokenStore(), requester, 60*time.Minute, zap.NewNop())
	manager.SetClock(clock.Now)
	return manager, clock
}

func TestTokenManager_ReusesTokenWithinTTL(t *testing.T) {
	requester := &countingRequester{}
	manager, clock := newTestTokenManager(requester)
	cred := Credential{Username: "user", Password: "secret"}
	ctx := context.Background()

	first, err := manager.GetValidToken(ctx, cred)
	require.NoError(t, err)

	clock.now = clock.now.Add(59 * time.Minute)
	second, err := manager.GetValidToken(ctx, cred)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, requester.calls)
}

func TestTokenManager_RefreshesExpiredToken(t *testing.T) {
	requester := &countingRequester{}
	manager, clock := newTestTokenManager(requester)
	cred := Credential{Username: "user", Password: "secret"}
	ctx := context.Background()

	first, err := manager.GetValidToken(ctx, cred)
	require.NoError(t, err)

	clock.now = clock.now.Add(60 * time.Minute)
	second, err := manager.GetValidToken(ctx, cred)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, requester.calls)
}

func TestTokenManager_TokensAreScopedPerCredential(t *testing.T) {
	requester := &countingRequester{}
	manager, _ := newTestTokenManager(requester)
	ctx := context.Background()

	_, err := manager.GetValidToken(ctx, Credential{Username: "a", Password: "1"})
	require.NoError(t, err)
	_, err = manager.GetValidToken(ctx, Credential{Username: "a", Password: "2"})
	require.NoError(t, err)

	assert.Equal(t, 2, requester.calls)
}

func TestTokenManager_RequestErrorIsReturned(t *testing.T) {
	requester := &countingRequester{err: errors.New("boom")}
	manager, _ := newTestTokenManager(requester)

	token, err := manager.GetValidToken(context.Background(), Credential{Username: "u", Password: "p"})

	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestTokenManager_Invalidate(t *testing.T) {
	requester := &countingRequester{}
	manager, _ := newTestTokenManager(requester)
	cred := Credential{Username: "user", Password: "secret"}
	ctx := context.Background()

	_, err := manager.GetValidToken(ctx, cred)
	require.NoError(t, err)
	manager.Invalidate(ctx, cred)
	_, err = manager.GetValidToken(ctx, cred)
	require.NoError(t, err)

	assert.Equal(t, 2, requester.calls)
}

func TestCredential_KeyHidesPassword(t *testing.T) {
	cred := Credential{Username: "user", Password: "secret"}

	assert.Len(t, cred.Key(), 64)
	assert.NotContains(t, cred.Key(), "secret")
	assert.Equal(t, cred.Key(), Credential{Username: "user", Password: "secret"}.Key())
}
