package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MediaURIPrefix prefixes the URIs of images kept in the database
const MediaURIPrefix = "db://media_blobs/"

type mediaRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMediaRepository creates a media store writing to the media_blobs table
func NewMediaRepository(db *gorm.DB, logger *zap.Logger) domainRepo.MediaBlobStore {
	return &mediaRepository{
		db:     db,
		logger: logger,
	}
}

// Put stores the image under key, replacing any previous content
func (r *mediaRepository) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	blob := model.MediaBlob{
		ID:          uuid.New(),
		Key:         key,
		ContentType: contentType,
		Data:        data,
		Size:        len(data),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"content_type", "data", "size", "updated_at"}),
		}).
		Create(&blob).Error
	if err != nil {
		r.logger.Error("Failed to store media blob",
			zap.String("key", key),
			zap.Int("size", len(data)),
			zap.Error(err))
		return "", fmt.Errorf("failed to store media: %w", err)
	}

	return MediaURIPrefix + key, nil
}

// Get loads a stored image by key, (nil, nil) when absent
func (r *mediaRepository) Get(ctx context.Context, key string) (*model.MediaBlob, error) {
	var blob model.MediaBlob

	err := r.db.WithContext(ctx).Where("key = ?", key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	return &blob, nil
}
