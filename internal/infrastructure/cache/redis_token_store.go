package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
)

// RedisTokenStore shares vendor tokens between processes through Redis.
// Keys expire together with the token.
type RedisTokenStore struct {
	client    redis.Cmdable
	keyPrefix string
	now       func() time.Time
	logger    *zap.Logger
}

// NewRedisTokenStore creates a Redis backed token store
func NewRedisTokenStore(client redis.Cmdable, keyPrefix string, logger *zap.Logger) domainRepo.TokenStore {
	return &RedisTokenStore{
		client:    client,
		keyPrefix: keyPrefix,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

type storedToken struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *RedisTokenStore) key(credentialKey string) string {
	return s.keyPrefix + credentialKey
}

// Get retrieves the token stored for a credential
func (s *RedisTokenStore) Get(ctx context.Context, credentialKey string) (*model.VendorToken, error) {
	raw, err := s.client.Get(ctx, s.key(credentialKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Error("Failed to read vendor token from Redis", zap.Error(err))
		return nil, fmt.Errorf("failed to read vendor token: %w", err)
	}

	var stored storedToken
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("Discarding unreadable vendor token", zap.Error(err))
		return nil, nil
	}

	return &model.VendorToken{
		CredentialKey: credentialKey,
		Value:         stored.Value,
		ExpiresAt:     stored.ExpiresAt.UTC(),
	}, nil
}

// Save replaces the token of a credential
func (s *RedisTokenStore) Save(ctx context.Context, token *model.VendorToken) error {
	ttl := token.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, token.CredentialKey)
	}

	payload, err := json.Marshal(storedToken{Value: token.Value, ExpiresAt: token.ExpiresAt.UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode vendor token: %w", err)
	}

	if err := s.client.Set(ctx, s.key(token.CredentialKey), payload, ttl).Err(); err != nil {
		s.logger.Error("Failed to write vendor token to Redis", zap.Error(err))
		return fmt.Errorf("failed to write vendor token: %w", err)
	}
	return nil
}

// Delete drops the token of a credential
func (s *RedisTokenStore) Delete(ctx context.Context, credentialKey string) error {
	if err := s.client.Del(ctx, s.key(credentialKey)).Err(); err != nil {
		return fmt.Errorf("failed to delete vendor token: %w", err)
	}
	return nil
}
