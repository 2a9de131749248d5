package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/dto"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/usecase"
	"go.uber.org/zap"
)

// CustomerRequest registers or renames a customer
type CustomerRequest struct {
	ExternalID string `json:"external_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
}

// CatalogHandler serves entity sync, customers, prices and stored media
type CatalogHandler struct {
	entities *usecase.EntitySyncService
	prices   *usecase.CustomerPriceService
	media    domainRepo.MediaBlobStore
	logger   *zap.Logger
}

// NewCatalogHandler creates the handler; media may be nil when images live in S3
func NewCatalogHandler(
	entities *usecase.EntitySyncService,
	prices *usecase.CustomerPriceService,
	media domainRepo.MediaBlobStore,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		entities: entities,
		prices:   prices,
		media:    media,
		logger:   logger,
	}
}

// SyncEntities pulls one entity list from the vendor
func (h *CatalogHandler) SyncEntities(c echo.Context) error {
	entityType, ok := model.ParseEntityType(c.Param("entity"))
	if !ok || entityType == model.EntityCustomer {
		return badRequest("entity must be one of brands, attributes, variants")
	}

	report, err := h.entities.Sync(c.Request().Context(), entityType)
	if err != nil {
		return respondError(h.logger, err, "Failed to sync entities", zap.String("entity_type", string(entityType)))
	}

	return c.JSON(http.StatusOK, report)
}

// UpsertCustomer creates or renames a customer by external id
func (h *CatalogHandler) UpsertCustomer(c echo.Context) error {
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(h.logger, err, "Invalid customer request")
	}

	id, err := h.entities.Upsert(c.Request().Context(), model.EntityCustomer, dto.EntityRecord{
		ExternalID: req.ExternalID,
		Name:       req.Name,
	})
	if err != nil {
		return respondError(h.logger, err, "Failed to upsert customer", zap.String("external_id", req.ExternalID))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":          id,
		"external_id": req.ExternalID,
		"name":        strings.TrimSpace(req.Name),
	})
}

// SetPrice creates or updates a negotiated customer price
func (h *CatalogHandler) SetPrice(c echo.Context) error {
	var req usecase.PriceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(h.logger, err, "Invalid price request")
	}

	price, err := h.prices.CreateOrUpdatePrice(c.Request().Context(), req)
	if err != nil {
		return respondError(h.logger, err, "Failed to set customer price",
			zap.String("sku", req.SKU),
			zap.String("customer_ref", req.CustomerRef))
	}

	return c.JSON(http.StatusOK, price)
}

// ListPrices returns the negotiated prices of a customer
func (h *CatalogHandler) ListPrices(c echo.Context) error {
	prices, err := h.prices.ListPrices(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return respondError(h.logger, err, "Failed to list customer prices", zap.String("customer_ref", c.Param("ref")))
	}
	return c.JSON(http.StatusOK, prices)
}

// GetMedia serves an image kept in the database
func (h *CatalogHandler) GetMedia(c echo.Context) error {
	if h.media == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Media is not stored in the database"})
	}

	key := c.Param("*")
	blob, err := h.media.Get(c.Request().Context(), key)
	if err != nil {
		return respondError(h.logger, err, "Failed to get media", zap.String("key", key))
	}
	if blob == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Media not found"})
	}

	return c.Blob(http.StatusOK, blob.ContentType, blob.Data)
}
