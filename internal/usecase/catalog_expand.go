package usecase

import (
	"context"
	"fmt"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
)

// expandProduct writes one decoded product as a template with its color x size variants.
// Only the axes the product has are expanded; a product with neither gets one variant.
func (s *CatalogImportService) expandProduct(ctx context.Context, rec dto.ProductRecord, attrs fixedAttributes) (int64, error) {
	colorIDs, err := s.upsertValues(ctx, attrs.color, rec.ColorNames)
	if err != nil {
		return 0, err
	}
	sizeIDs, err := s.upsertValues(ctx, attrs.size, rec.SizeNames)
	if err != nil {
		return 0, err
	}

	template, err := s.saveTemplate(ctx, rec)
	if err != nil {
		return 0, err
	}

	valueIDs := make([]int64, 0, len(colorIDs)+len(sizeIDs))
	for _, name := range rec.ColorNames {
		valueIDs = append(valueIDs, colorIDs[name])
	}
	for _, name := range rec.SizeNames {
		valueIDs = append(valueIDs, sizeIDs[name])
	}
	if err := s.products.SetTemplateAttributeValues(ctx, template.ID, valueIDs); err != nil {
		return 0, err
	}

	colors, sizes := axis(rec.ColorNames), axis(rec.SizeNames)
	combinations := make([]domainRepo.VariantCombination, 0, len(colors)*len(sizes))
	for _, color := range colors {
		for _, size := range sizes {
			// a missing name maps to the zero id
			combinations = append(combinations, domainRepo.VariantCombination{
				ColorValueID: colorIDs[color],
				SizeValueID:  sizeIDs[size],
			})
		}
	}
	variants, err := s.products.EnsureVariants(ctx, template.ID, combinations)
	if err != nil {
		return 0, err
	}

	if uri, ok := s.images.First(ctx, fmt.Sprintf("templates/%d.jpg", template.ID), rec.ImageURLs); ok {
		template.ImageURI = uri
		if err := s.products.UpdateTemplate(ctx, template); err != nil {
			return 0, err
		}
	}

	packshots := make(map[string]string)
	for i := range variants {
		if err := s.applyOffer(ctx, rec, &variants[i], packshots); err != nil {
			return 0, err
		}
	}

	return template.ID, nil
}

// axis lists the values of one attribute line, or a single blank when the product has none
func axis(names []string) []string {
	if len(names) == 0 {
		return []string{""}
	}
	return names
}

func (s *CatalogImportService) upsertValues(ctx context.Context, attributeID int64, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	for _, name := range names {
		id, err := s.entities.UpsertAttributeValue(ctx, attributeID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert attribute value %q: %w", name, err)
		}
		ids[name] = id
	}
	return ids, nil
}

// saveTemplate creates the template or refreshes the one sharing its non-empty reference
func (s *CatalogImportService) saveTemplate(ctx context.Context, rec dto.ProductRecord) (*model.ProductTemplate, error) {
	if rec.Reference != "" {
		existing, err := s.products.FindTemplateByReference(ctx, rec.Reference)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Name = rec.Name
			existing.Description = rec.Description
			existing.BrandName = rec.Brand
			if err := s.products.UpdateTemplate(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
	}

	template := &model.ProductTemplate{
		ExternalReference: rec.Reference,
		Name:              rec.Name,
		Description:       rec.Description,
		BrandName:         rec.Brand,
	}
	if err := s.products.CreateTemplate(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// applyOffer copies the vendor offer of the variant's combination onto it.
// A combination the vendor does not sell keeps no code and no price.
func (s *CatalogImportService) applyOffer(ctx context.Context, rec dto.ProductRecord, variant *model.ProductVariant, packshots map[string]string) error {
	key := dto.VariantKey{Color: variant.ColorValue.Name, Size: variant.SizeValue.Name}
	offer, ok := rec.Offers[key]
	if !ok {
		s.logger.Debug("CatalogImport: no offer for combination",
			zap.String("reference", rec.Reference),
			zap.String("color", key.Color),
			zap.String("size", key.Size))
		return nil
	}

	if offer.SKU != "" && offer.SKU != variant.SKUValue() {
		owner, err := s.products.FindVariantBySKU(ctx, offer.SKU)
		if err != nil {
			return err
		}
		if owner != nil && owner.ID != variant.ID {
			s.logger.Warn("CatalogImport: sku already assigned to another variant",
				zap.String("sku", offer.SKU),
				zap.String("reference", rec.Reference),
				zap.Int64("owner_variant_id", owner.ID))
		} else {
			sku := offer.SKU
			variant.SKU = &sku
		}
	}

	if offer.HasCost {
		variant.StandardPrice = offer.Cost
		variant.ListPrice = offer.Cost.Mul(s.markup).Round(4)
	}

	if offer.PackshotURL != "" {
		uri, seen := packshots[offer.PackshotURL]
		if !seen {
			uri, _ = s.images.First(ctx, fmt.Sprintf("variants/%d.jpg", variant.ID), []string{offer.PackshotURL})
			packshots[offer.PackshotURL] = uri
		}
		if uri != "" {
			variant.ImageURI = uri
		}
	}

	return s.products.UpdateVariant(ctx, variant)
}
