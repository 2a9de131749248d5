package cache

import (
	"context"
	"sync"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
)

// MemoryTokenStore keeps tokens for the lifetime of the process
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]model.VendorToken
}

// NewMemoryTokenStore creates an empty in-process token store
func NewMemoryTokenStore() domainRepo.TokenStore {
	return &MemoryTokenStore{tokens: make(map[string]model.VendorToken)}
}

func (s *MemoryTokenStore) Get(_ context.Context, credentialKey string) (*model.VendorToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[credentialKey]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, token *model.VendorToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token.CredentialKey] = *token
	return nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, credentialKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, credentialKey)
	return nil
}
