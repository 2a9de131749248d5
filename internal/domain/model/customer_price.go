package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerPrice is a negotiated per-customer price for a SKU
type CustomerPrice struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductSKU string          `gorm:"column:product_sku;size:100;not null;uniqueIndex:idx_customer_price_sku_customer" json:"product_sku"`
	CustomerID int64           `gorm:"not null;uniqueIndex:idx_customer_price_sku_customer" json:"customer_id"`
	Price      decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"price"`
	Currency   string          `gorm:"size:3;not null" json:"currency"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (CustomerPrice) TableName() string {
	return "customer_prices"
}
