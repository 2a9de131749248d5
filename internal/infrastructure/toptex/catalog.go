package toptex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	"go.uber.org/zap"
)

// RequestCatalogLink asks the vendor to prepare the bulk export and returns its link
func (c *Client) RequestCatalogLink(ctx context.Context) (string, error) {
	query := url.Values{}
	query.Set("usage_right", c.vendor.UsageRight)
	query.Set("display_prices", "1")
	query.Set("result_in_file", "1")

	var resp dto.CatalogLinkResponse
	if err := c.Get(ctx, c.vendor.CatalogPath, query, &resp); err != nil {
		return "", err
	}

	link := resp.Location()
	if link == "" {
		return "", domainErrors.NewConfigurationError("catalog export response carries neither link nor url")
	}

	c.logger.Info("TopTexClient: Catalog export link received", zap.String("link", link))
	return link, nil
}

// DownloadCatalog fetches the bulk export and splits it into raw product records.
// A payload without records is a DownloadError. Records are decoded one by one later so a malformed record only fails itself.
func (c *Client) DownloadCatalog(ctx context.Context, link string) ([]json.RawMessage, error) {
	body, _, err := c.Download(ctx, link)
	if err != nil {
		return nil, err
	}

	records, err := splitRecords(body)
	if err != nil {
		return nil, err
	}
	// an empty export means the vendor failed to build it
	if len(records) == 0 {
		return nil, domainErrors.NewDownloadError("catalog payload holds no records", nil)
	}

	c.logger.Info("TopTexClient: Catalog export downloaded",
		zap.Int("bytes", len(body)),
		zap.Int("records", len(records)))
	return records, nil
}

// ListEntities reads one of the simple list endpoints
func (c *Client) ListEntities(ctx context.Context, entityType model.EntityType) ([]dto.EntityRecord, error) {
	var path string
	switch entityType {
	case model.EntityBrand:
		path = c.vendor.BrandsPath
	case model.EntityAttribute:
		path = c.vendor.AttributesPath
	case model.EntityVariant:
		path = c.vendor.VariantsPath
	default:
		return nil, domainErrors.NewConfigurationError(fmt.Sprintf("no vendor list endpoint for %s", entityType))
	}

	var raw json.RawMessage
	if err := c.Get(ctx, path, nil, &raw); err != nil {
		return nil, err
	}

	items, err := splitRecords(raw)
	if err != nil {
		return nil, err
	}

	records := make([]dto.EntityRecord, 0, len(items))
	for _, item := range items {
		var entity dto.VendorEntity
		if err := json.Unmarshal(item, &entity); err != nil {
			c.logger.Warn("TopTexClient: Skipping undecodable list item",
				zap.String("entity_type", string(entityType)),
				zap.ByteString("item", item),
				zap.Error(err))
			continue
		}
		records = append(records, dto.EntityRecord{
			ExternalID: string(entity.ID),
			Name:       entity.Name.Pick(c.locale),
		})
	}

	return records, nil
}

// splitRecords accepts a JSON array or an object wrapping one under items, products or data
func splitRecords(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, domainErrors.NewDownloadError("catalog payload is empty", nil)
	}

	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, domainErrors.NewDownloadError("catalog payload is not valid JSON", err)
		}
		return records, nil
	case '{':
		var wrapper struct {
			Items    []json.RawMessage `json:"items"`
			Products []json.RawMessage `json:"products"`
			Data     []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, domainErrors.NewDownloadError("catalog payload is not valid JSON", err)
		}
		switch {
		case wrapper.Items != nil:
			return wrapper.Items, nil
		case wrapper.Products != nil:
			return wrapper.Products, nil
		case wrapper.Data != nil:
			return wrapper.Data, nil
		}
		return nil, domainErrors.NewDownloadError("catalog payload holds no record list", nil)
	default:
		return nil, domainErrors.NewDownloadError("catalog payload is not valid JSON", nil)
	}
}
