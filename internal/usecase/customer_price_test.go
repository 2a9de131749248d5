package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
	"go.uber.org/zap"
)

func TestCustomerPriceService_RejectsNonPositivePrice(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
	}{
		{name: "zero", price: decimal.Zero},
		{name: "negative", price: decimal.NewFromInt(-3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := new(MockEntityRepository)
			prices := new(MockCustomerPriceRepository)
			service := NewCustomerPriceService(entities, prices, "EUR", zap.NewNop())

			_, err := service.CreateOrUpdatePrice(context.Background(), PriceRequest{
				SKU:         "X1-R-M",
				CustomerRef: "C-1",
				Price:       tt.price,
			})

			require.Error(t, err)
			var catalogErr *domainErrors.CatalogError
			assert.ErrorAs(t, err, &catalogErr)
			assert.Equal(t, domainErrors.ErrTypeValidation, catalogErr.Type)

			// rejected before any lookup
			entities.AssertNotCalled(t, "FindByExternalID", mock.Anything, mock.Anything, mock.Anything)
			prices.AssertNotCalled(t, "FindBySKUAndCustomer", mock.Anything, mock.Anything, mock.Anything)
			prices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCustomerPriceService_UnknownCustomer(t *testing.T) {
	entities := new(MockEntityRepository)
	prices := new(MockCustomerPriceRepository)
	entities.On("FindByExternalID", mock.Anything, model.EntityCustomer, "ghost").Return(nil, nil)

	service := NewCustomerPriceService(entities, prices, "EUR", zap.NewNop())
	_, err := service.CreateOrUpdatePrice(context.Background(), PriceRequest{
		SKU:         "X1-R-M",
		CustomerRef: "ghost",
		Price:       decimal.NewFromInt(10),
	})

	assert.True(t, domainErrors.IsType(err, domainErrors.ErrTypeValidation))
	prices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerPriceService_CreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	customer := &model.ExternalEntity{ID: 7, ExternalID: "C-1", Name: "Acme"}

	entities := new(MockEntityRepository)
	entities.On("FindByExternalID", mock.Anything, model.EntityCustomer, "C-1").Return(customer, nil)

	prices := new(MockCustomerPriceRepository)
	prices.On("FindBySKUAndCustomer", mock.Anything, "X1-R-M", int64(7)).Return(nil, nil).Once()
	prices.On("Create", mock.Anything, mock.AnythingOfType("*model.CustomerPrice")).Return(nil).Once()

	service := NewCustomerPriceService(entities, prices, "EUR", zap.NewNop())

	created, err := service.CreateOrUpdatePrice(ctx, PriceRequest{
		SKU:         "X1-R-M",
		CustomerRef: "C-1",
		Price:       decimal.RequireFromString("4.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.CustomerID)
	assert.Equal(t, "EUR", created.Currency)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("4.5")))

	stored := &model.CustomerPrice{ID: 1, ProductSKU: "X1-R-M", CustomerID: 7, Price: created.Price, Currency: "EUR"}
	prices.On("FindBySKUAndCustomer", mock.Anything, "X1-R-M", int64(7)).Return(stored, nil).Once()
	prices.On("Update", mock.Anything, stored).Return(nil).Once()

	updated, err := service.CreateOrUpdatePrice(ctx, PriceRequest{
		SKU:         "X1-R-M",
		CustomerRef: "C-1",
		Price:       decimal.RequireFromString("4.20"),
		Currency:    "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "USD", updated.Currency)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("4.2")))

	prices.AssertNumberOfCalls(t, "Create", 1)
	prices.AssertNumberOfCalls(t, "Update", 1)
	prices.AssertExpectations(t)
}
