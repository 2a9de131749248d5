package repository

import (
	"context"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
)

// TokenStore persists vendor session tokens per credential
type TokenStore interface {
	// Get returns (nil, nil) when no token is stored for the key
	Get(ctx context.Context, credentialKey string) (*model.VendorToken, error)
	// Save replaces the stored token as a whole
	Save(ctx context.Context, token *model.VendorToken) error
	Delete(ctx context.Context, credentialKey string) error
}
