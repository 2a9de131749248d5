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
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product template/variant repository
func NewProductRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

// FindTemplateByReference retrieves a template by its vendor reference.
// An empty reference never matches.
func (r *productRepository) FindTemplateByReference(ctx context.Context, reference string) (*model.ProductTemplate, error) {
	if reference == "" {
		return nil, nil
	}

	var template model.ProductTemplate
	err := r.db.WithContext(ctx).
		Where("external_reference = ?", reference).
		Order("id ASC").
		First(&template).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get template by reference",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &template, nil
}

// GetTemplate loads a template with its attribute values and variants
func (r *productRepository) GetTemplate(ctx context.Context, id int64) (*model.ProductTemplate, error) {
	var template model.ProductTemplate

	err := r.db.WithContext(ctx).
		Preload("AttributeValues").
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Variants.ColorValue").
		Preload("Variants.SizeValue").
		First(&template, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return &template, nil
}

// CreateTemplate inserts a template without touching its associations
func (r *productRepository) CreateTemplate(ctx context.Context, template *model.ProductTemplate) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(template).Error
	if err != nil {
		r.logger.Error("Failed to create template",
			zap.String("reference", template.ExternalReference),
			zap.String("name", template.Name),
			zap.Error(err))
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// UpdateTemplate overwrites the vendor-owned fields of a template
func (r *productRepository) UpdateTemplate(ctx context.Context, template *model.ProductTemplate) error {
	err := r.db.WithContext(ctx).
		Model(&model.ProductTemplate{}).
		Where("id = ?", template.ID).
		Updates(map[string]interface{}{
			"name":        template.Name,
			"description": template.Description,
			"brand_name":  template.BrandName,
			"image_uri":   template.ImageURI,
			"updated_at":  time.Now().UTC(),
		}).Error
	if err != nil {
		r.logger.Error("Failed to update template",
			zap.Int64("template_id", template.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

// SetTemplateAttributeValues links values to a template; existing links are kept
func (r *productRepository) SetTemplateAttributeValues(ctx context.Context, templateID int64, valueIDs []int64) error {
	if len(valueIDs) == 0 {
		return nil
	}

	rows := make([]model.ProductTemplateAttributeValue, 0, len(valueIDs))
	for _, id := range valueIDs {
		rows = append(rows, model.ProductTemplateAttributeValue{
			ProductTemplateID: templateID,
			AttributeValueID:  id,
		})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to link attribute values: %w", err)
	}
	return nil
}

// EnsureVariants creates the missing combinations in one transaction
func (r *productRepository) EnsureVariants(ctx context.Context, templateID int64, combinations []domainRepo.VariantCombination) ([]model.ProductVariant, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.ProductVariant
		if err := tx.Where("template_id = ?", templateID).Find(&existing).Error; err != nil {
			return err
		}

		have := make(map[domainRepo.VariantCombination]bool, len(existing))
		for _, v := range existing {
			have[domainRepo.VariantCombination{ColorValueID: v.ColorValueID, SizeValueID: v.SizeValueID}] = true
		}

		for _, combo := range combinations {
			if have[combo] {
				continue
			}
			variant := model.ProductVariant{
				TemplateID:   templateID,
				ColorValueID: combo.ColorValueID,
				SizeValueID:  combo.SizeValueID,
			}
			if err := tx.Omit(clause.Associations).Create(&variant).Error; err != nil {
				return err
			}
			have[combo] = true
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to create variants",
			zap.Int64("template_id", templateID),
			zap.Int("combinations", len(combinations)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create variants: %w", err)
	}

	var variants []model.ProductVariant
	err = r.db.WithContext(ctx).
		Preload("ColorValue").
		Preload("SizeValue").
		Where("template_id = ?", templateID).
		Order("id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}

	return variants, nil
}

// UpdateVariant overwrites code, prices and picture of a variant
func (r *productRepository) UpdateVariant(ctx context.Context, variant *model.ProductVariant) error {
	err := r.db.WithContext(ctx).
		Model(&model.ProductVariant{}).
		Where("id = ?", variant.ID).
		Updates(map[string]interface{}{
			"sku":            variant.SKU,
			"standard_price": variant.StandardPrice,
			"list_price":     variant.ListPrice,
			"image_uri":      variant.ImageURI,
			"updated_at":     time.Now().UTC(),
		}).Error
	if err != nil {
		r.logger.Error("Failed to update variant",
			zap.Int64("variant_id", variant.ID),
			zap.String("sku", variant.SKUValue()),
			zap.Error(err))
		return fmt.Errorf("failed to update variant: %w", err)
	}
	return nil
}

// FindVariantBySKU retrieves a variant by its code
func (r *productRepository) FindVariantBySKU(ctx context.Context, sku string) (*model.ProductVariant, error) {
	var variant model.ProductVariant

	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get variant by sku: %w", err)
	}

	return &variant, nil
}
