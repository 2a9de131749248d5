package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type entityRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewEntityRepository creates a repository over the brand, attribute, vendor variant and customer tables
func NewEntityRepository(db *gorm.DB, logger *zap.Logger) domainRepo.EntityRepository {
	return &entityRepository{
		db:     db,
		logger: logger,
	}
}

func (r *entityRepository) table(entityType model.EntityType) (string, error) {
	table, ok := entityType.Table()
	if !ok {
		return "", fmt.Errorf("unknown entity type %q", entityType)
	}
	return table, nil
}

// FindByExternalID retrieves an entity by its vendor id
func (r *entityRepository) FindByExternalID(ctx context.Context, entityType model.EntityType, externalID string) (*model.ExternalEntity, error) {
	table, err := r.table(entityType)
	if err != nil {
		return nil, err
	}

	var entity model.ExternalEntity
	err = r.db.WithContext(ctx).
		Table(table).
		Where("external_id = ?", externalID).
		First(&entity).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get entity by external ID",
			zap.String("entity_type", string(entityType)),
			zap.String("external_id", externalID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get %s: %w", entityType, err)
	}

	return &entity, nil
}

// Create inserts a new entity
func (r *entityRepository) Create(ctx context.Context, entityType model.EntityType, entity *model.ExternalEntity) error {
	table, err := r.table(entityType)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Table(table).Create(entity).Error; err != nil {
		r.logger.Error("Failed to create entity",
			zap.String("entity_type", string(entityType)),
			zap.String("external_id", entity.ExternalID),
			zap.Error(err))
		return fmt.Errorf("failed to create %s: %w", entityType, err)
	}

	return nil
}

// UpdateName overwrites the only mutable field of an entity
func (r *entityRepository) UpdateName(ctx context.Context, entityType model.EntityType, id int64, name string) error {
	table, err := r.table(entityType)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		r.logger.Error("Failed to update entity name",
			zap.String("entity_type", string(entityType)),
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("failed to update %s: %w", entityType, err)
	}

	return nil
}

// Count returns the number of stored entities of a type
func (r *entityRepository) Count(ctx context.Context, entityType model.EntityType) (int64, error) {
	table, err := r.table(entityType)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", entityType, err)
	}
	return count, nil
}

type attributeValueRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAttributeValueRepository creates a new attribute value repository
func NewAttributeValueRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AttributeValueRepository {
	return &attributeValueRepository{
		db:     db,
		logger: logger,
	}
}

// FindByName retrieves a value by name within its attribute
func (r *attributeValueRepository) FindByName(ctx context.Context, attributeID int64, name string) (*model.AttributeValue, error) {
	var value model.AttributeValue

	err := r.db.WithContext(ctx).
		Where("attribute_id = ? AND name = ?", attributeID, name).
		First(&value).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get attribute value",
			zap.Int64("attribute_id", attributeID),
			zap.String("name", name),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get attribute value: %w", err)
	}

	return &value, nil
}

// Create inserts a new attribute value
func (r *attributeValueRepository) Create(ctx context.Context, value *model.AttributeValue) error {
	if err := r.db.WithContext(ctx).Create(value).Error; err != nil {
		r.logger.Error("Failed to create attribute value",
			zap.Int64("attribute_id", value.AttributeID),
			zap.String("name", value.Name),
			zap.Error(err))
		return fmt.Errorf("failed to create attribute value: %w", err)
	}
	return nil
}
