package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tokenRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTokenRepository creates a database backed vendor token store
func NewTokenRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TokenStore {
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the token stored for a credential
func (r *tokenRepository) Get(ctx context.Context, credentialKey string) (*model.VendorToken, error) {
	var token model.VendorToken

	err := r.db.WithContext(ctx).
		Where("credential_key = ?", credentialKey).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get vendor token", zap.Error(err))
		return nil, fmt.Errorf("failed to get vendor token: %w", err)
	}

	return &token, nil
}

// Save replaces the token of a credential
func (r *tokenRepository) Save(ctx context.Context, token *model.VendorToken) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "credential_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(token).Error
	if err != nil {
		r.logger.Error("Failed to save vendor token", zap.Error(err))
		return fmt.Errorf("failed to save vendor token: %w", err)
	}
	return nil
}

// Delete drops the token of a credential
func (r *tokenRepository) Delete(ctx context.Context, credentialKey string) error {
	err := r.db.WithContext(ctx).
		Where("credential_key = ?", credentialKey).
		Delete(&model.VendorToken{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete vendor token: %w", err)
	}
	return nil
}
