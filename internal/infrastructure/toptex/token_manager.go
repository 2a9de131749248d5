package toptex

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
)

// DefaultTokenTTL is how long a vendor token is trusted after it is issued
const DefaultTokenTTL = 60 * time.Minute

// Credential identifies the vendor account a token belongs to
type Credential struct {
	Username string
	Password string
}

// Key returns a stable store key that does not reveal the password
func (c Credential) Key() string {
	sum := sha256.Sum256([]byte(c.Username + "\x00" + c.Password))
	return hex.EncodeToString(sum[:])
}

// TokenRequester exchanges a credential for a fresh vendor token
type TokenRequester interface {
	RequestToken(ctx context.Context, credential Credential) (string, error)
}

// TokenManager hands out vendor tokens, refreshing them once they expire.
// Check-then-refresh is not locked; two concurrent callers may both refresh.
type TokenManager struct {
	store     domainRepo.TokenStore
	requester TokenRequester
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewTokenManager creates a token manager over store
func NewTokenManager(store domainRepo.TokenStore, requester TokenRequester, ttl time.Duration, logger *zap.Logger) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		store:     store,
		requester: requester,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

// SetClock replaces the time source; times are always converted to UTC
func (m *TokenManager) SetClock(now func() time.Time) {
	m.now = func() time.Time { return now().UTC() }
}

// GetValidToken returns the cached token while it is valid, otherwise a new one
func (m *TokenManager) GetValidToken(ctx context.Context, credential Credential) (string, error) {
	key := credential.Key()

	cached, err := m.store.Get(ctx, key)
	if err != nil {
		m.logger.Warn("TokenManager: Failed to read cached token, refreshing",
			zap.String("username", credential.Username),
			zap.Error(err))
	} else if cached.ValidAt(m.now()) {
		return cached.Value, nil
	}

	return m.Refresh(ctx, credential)
}

// Refresh always requests a new token and stores it
func (m *TokenManager) Refresh(ctx context.Context, credential Credential) (string, error) {
	m.logger.Info("TokenManager: Requesting new vendor token",
		zap.String("username", credential.Username))

	value, err := m.requester.RequestToken(ctx, credential)
	if err != nil {
		return "", err
	}

	token := &model.VendorToken{
		CredentialKey: credential.Key(),
		Value:         value,
		ExpiresAt:     m.now().Add(m.ttl),
	}
	if err := m.store.Save(ctx, token); err != nil {
		m.logger.Warn("TokenManager: Failed to persist vendor token",
			zap.String("username", credential.Username),
			zap.Error(err))
	}

	m.logger.Info("TokenManager: Vendor token refreshed",
		zap.String("username", credential.Username),
		zap.Time("expires_at", token.ExpiresAt))

	return value, nil
}

// Invalidate forgets the stored token of a credential
func (m *TokenManager) Invalidate(ctx context.Context, credential Credential) {
	if err := m.store.Delete(ctx, credential.Key()); err != nil {
		m.logger.Warn("TokenManager: Failed to drop vendor token",
			zap.String("username", credential.Username),
			zap.Error(err))
	}
}
