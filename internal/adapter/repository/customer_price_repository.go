package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type customerPriceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCustomerPriceRepository creates a new customer price repository
func NewCustomerPriceRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CustomerPriceRepository {
	return &customerPriceRepository{
		db:     db,
		logger: logger,
	}
}

// FindBySKUAndCustomer retrieves the negotiated price of a customer for a SKU
func (r *customerPriceRepository) FindBySKUAndCustomer(ctx context.Context, sku string, customerID int64) (*model.CustomerPrice, error) {
	var price model.CustomerPrice

	err := r.db.WithContext(ctx).
		Where("product_sku = ? AND customer_id = ?", sku, customerID).
		First(&price).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get customer price",
			zap.String("sku", sku),
			zap.Int64("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get customer price: %w", err)
	}

	return &price, nil
}

// ListByCustomer retrieves every negotiated price of a customer
func (r *customerPriceRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*model.CustomerPrice, error) {
	var prices []*model.CustomerPrice

	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("product_sku ASC").
		Find(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list customer prices: %w", err)
	}

	return prices, nil
}

// Create inserts a new customer price
func (r *customerPriceRepository) Create(ctx context.Context, price *model.CustomerPrice) error {
	if err := r.db.WithContext(ctx).Create(price).Error; err != nil {
		r.logger.Error("Failed to create customer price",
			zap.String("sku", price.ProductSKU),
			zap.Int64("customer_id", price.CustomerID),
			zap.Error(err))
		return fmt.Errorf("failed to create customer price: %w", err)
	}
	return nil
}

// Update saves price and currency of an existing row
func (r *customerPriceRepository) Update(ctx context.Context, price *model.CustomerPrice) error {
	err := r.db.WithContext(ctx).
		Model(price).
		Select("price", "currency", "updated_at").
		Updates(price).Error
	if err != nil {
		r.logger.Error("Failed to update customer price",
			zap.Int64("id", price.ID),
			zap.Error(err))
		return fmt.Errorf("failed to update customer price: %w", err)
	}
	return nil
}
