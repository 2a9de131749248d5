package repository

import (
	"context"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
)

// VariantCombination is one color x size pair of attribute value ids.
// A zero id means the product has no value on that axis.
type VariantCombination struct {
	ColorValueID int64
	SizeValueID  int64
}

// ProductRepository stores product templates and their variants
type ProductRepository interface {
	// FindTemplateByReference returns (nil, nil) when no template matches
	FindTemplateByReference(ctx context.Context, reference string) (*model.ProductTemplate, error)
	GetTemplate(ctx context.Context, id int64) (*model.ProductTemplate, error)
	CreateTemplate(ctx context.Context, template *model.ProductTemplate) error
	UpdateTemplate(ctx context.Context, template *model.ProductTemplate) error
	// SetTemplateAttributeValues links the template to the given values, keeping existing links
	SetTemplateAttributeValues(ctx context.Context, templateID int64, valueIDs []int64) error
	// EnsureVariants creates missing combinations and returns every variant of the template
	EnsureVariants(ctx context.Context, templateID int64, combinations []VariantCombination) ([]model.ProductVariant, error)
	UpdateVariant(ctx context.Context, variant *model.ProductVariant) error
	// FindVariantBySKU returns (nil, nil) when no variant carries the code
	FindVariantBySKU(ctx context.Context, sku string) (*model.ProductVariant, error)
}
