package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/repository"
	"go.uber.org/zap"
)

// PriceRequest asks for a negotiated price of one SKU for one customer
type PriceRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	CustomerRef string          `json:"customer_ref" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
}

// CustomerPriceService manages per-customer price overrides
type CustomerPriceService struct {
	entities        domainRepo.EntityRepository
	prices          domainRepo.CustomerPriceRepository
	defaultCurrency string
	logger          *zap.Logger
}

// NewCustomerPriceService creates a new customer price service
func NewCustomerPriceService(
	entities domainRepo.EntityRepository,
	prices domainRepo.CustomerPriceRepository,
	defaultCurrency string,
	logger *zap.Logger,
) *CustomerPriceService {
	if defaultCurrency == "" {
		defaultCurrency = "EUR"
	}
	return &CustomerPriceService{
		entities:        entities,
		prices:          prices,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// CreateOrUpdatePrice stores the price for (sku, customer), updating the existing row if any
func (s *CustomerPriceService) CreateOrUpdatePrice(ctx context.Context, req PriceRequest) (*model.CustomerPrice, error) {
	if !req.Price.IsPositive() {
		return nil, domainErrors.NewValidationError(fmt.Sprintf("price must be greater than zero, got %s", req.Price.String()))
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		return nil, domainErrors.NewValidationError("sku is required")
	}
	customerRef := strings.TrimSpace(req.CustomerRef)
	if customerRef == "" {
		return nil, domainErrors.NewValidationError("customer reference is required")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}

	customer, err := s.entities.FindByExternalID(ctx, model.EntityCustomer, customerRef)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainErrors.NewValidationError(fmt.Sprintf("unknown customer %q", customerRef))
	}

	existing, err := s.prices.FindBySKUAndCustomer(ctx, sku, customer.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Price = req.Price
		existing.Currency = currency
		if err := s.prices.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("CustomerPrice: updated price",
			zap.String("sku", sku),
			zap.String("customer_ref", customerRef),
			zap.String("price", req.Price.String()))
		return existing, nil
	}

	price := &model.CustomerPrice{
		ProductSKU: sku,
		CustomerID: customer.ID,
		Price:      req.Price,
		Currency:   currency,
	}
	if err := s.prices.Create(ctx, price); err != nil {
		return nil, err
	}
	s.logger.Info("CustomerPrice: created price",
		zap.String("sku", sku),
		zap.String("customer_ref", customerRef),
		zap.String("price", req.Price.String()))
	return price, nil
}

// ListPrices returns every override of the customer
func (s *CustomerPriceService) ListPrices(ctx context.Context, customerRef string) ([]*model.CustomerPrice, error) {
	customer, err := s.entities.FindByExternalID(ctx, model.EntityCustomer, strings.TrimSpace(customerRef))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domainErrors.NewValidationError(fmt.Sprintf("unknown customer %q", customerRef))
	}
	return s.prices.ListByCustomer(ctx, customer.ID)
}
