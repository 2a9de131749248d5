package repository

import (
	"context"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
)

// CustomerPriceRepository stores negotiated prices, one row per (sku, customer)
type CustomerPriceRepository interface {
	// FindBySKUAndCustomer returns (nil, nil) when no row matches
	FindBySKUAndCustomer(ctx context.Context, sku string, customerID int64) (*model.CustomerPrice, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*model.CustomerPrice, error)
	Create(ctx context.Context, price *model.CustomerPrice) error
	Update(ctx context.Context, price *model.CustomerPrice) error
}
