package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	"go.uber.org/zap"
)

func newTestRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisTokenStore, time.Time) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewRedisTokenStore(client, "test:token:", zap.NewNop()).(*RedisTokenStore)
	store.now = func() time.Time { return now }
	return mr, store, now
}

func TestRedisTokenStore_SaveAndGet(t *testing.T) {
	mr, store, now := newTestRedisStore(t)
	ctx := context.Background()

	err := store.Save(ctx, &model.VendorToken{
		CredentialKey: "cred-1",
		Value:         "tok-123",
		ExpiresAt:     now.Add(60 * time.Minute),
	})
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:token:cred-1"))
	assert.Equal(t, 60*time.Minute, mr.TTL("test:token:cred-1"))

	token, err := store.Get(ctx, "cred-1")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "tok-123", token.Value)
	assert.True(t, token.ExpiresAt.Equal(now.Add(60*time.Minute)))
}

func TestRedisTokenStore_MissingKey(t *testing.T) {
	_, store, _ := newTestRedisStore(t)

	token, err := store.Get(context.Background(), "unknown")
	assert.NoError(t, err)
	assert.Nil(t, token)
}

func TestRedisTokenStore_KeyExpiresWithToken(t *testing.T) {
	mr, store, now := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &model.VendorToken{
		CredentialKey: "cred-1",
		Value:         "tok-123",
		ExpiresAt:     now.Add(time.Minute),
	}))

	mr.FastForward(2 * time.Minute)

	token, err := store.Get(ctx, "cred-1")
	assert.NoError(t, err)
	assert.Nil(t, token)
}

func TestRedisTokenStore_Delete(t *testing.T) {
	mr, store, now := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &model.VendorToken{
		CredentialKey: "cred-1",
		Value:         "tok-123",
		ExpiresAt:     now.Add(time.Hour),
	}))
	require.NoError(t, store.Delete(ctx, "cred-1"))

	assert.False(t, mr.Exists("test:token:cred-1"))
}
