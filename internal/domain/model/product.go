package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixed attributes every imported product is expanded on
const (
	AttributeColorExternalID = "color"
	AttributeColorName       = "Color"
	AttributeSizeExternalID  = "size"
	AttributeSizeName        = "Size"
)

// ProductTemplate is the sellable product; it owns one variant per color x size
type ProductTemplate struct {
	ID                int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalReference string           `gorm:"size:100;not null;default:'';index" json:"external_reference"`
	Name              string           `gorm:"size:500;not null" json:"name"`
	Description       string           `gorm:"type:text" json:"description"`
	BrandName         string           `gorm:"size:255" json:"brand_name"`
	ImageURI          string           `gorm:"size:1000" json:"image_uri,omitempty"`
	AttributeValues   []AttributeValue `gorm:"many2many:product_template_attribute_values;" json:"attribute_values,omitempty"`
	Variants          []ProductVariant `gorm:"foreignKey:TemplateID" json:"variants,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ProductTemplate) TableName() string {
	return "product_templates"
}

// ProductVariant is one color x size combination of a template.
// ColorValueID or SizeValueID is 0 when the template lacks that axis.
type ProductVariant struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TemplateID    int64           `gorm:"not null;uniqueIndex:idx_variant_combination" json:"template_id"`
	ColorValueID  int64           `gorm:"not null;uniqueIndex:idx_variant_combination" json:"color_value_id"`
	SizeValueID   int64           `gorm:"not null;uniqueIndex:idx_variant_combination" json:"size_value_id"`
	SKU           *string         `gorm:"column:sku;size:100;uniqueIndex" json:"sku,omitempty"`
	StandardPrice decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"standard_price"`
	ListPrice     decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"list_price"`
	ImageURI      string          `gorm:"size:1000" json:"image_uri,omitempty"`
	ColorValue    AttributeValue  `gorm:"foreignKey:ColorValueID" json:"color_value"`
	SizeValue     AttributeValue  `gorm:"foreignKey:SizeValueID" json:"size_value"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// SKUValue returns the variant code or "" when none is assigned
func (v *ProductVariant) SKUValue() string {
	if v.SKU == nil {
		return ""
	}
	return *v.SKU
}

// ProductTemplateAttributeValue is the join row between templates and attribute values
type ProductTemplateAttributeValue struct {
	ProductTemplateID int64 `gorm:"primaryKey"`
	AttributeValueID  int64 `gorm:"primaryKey"`
}

// TableName specifies the table name for GORM
func (ProductTemplateAttributeValue) TableName() string {
	return "product_template_attribute_values"
}
