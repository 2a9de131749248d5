package model

import (
	"time"
)

// EntityType identifies a simple vendor entity reconciled by external id
type EntityType string

// Entity types handled by the upsert engine
const (
	EntityBrand     EntityType = "brand"
	EntityAttribute EntityType = "attribute"
	EntityVariant   EntityType = "variant"
	EntityCustomer  EntityType = "customer"
)

var entityTables = map[EntityType]string{
	EntityBrand:     "brands",
	EntityAttribute: "attributes",
	EntityVariant:   "vendor_variants",
	EntityCustomer:  "customers",
}

// Table returns the table backing the entity type
func (t EntityType) Table() (string, bool) {
	table, ok := entityTables[t]
	return table, ok
}

// ParseEntityType converts user input (singular or plural) into an EntityType
func ParseEntityType(s string) (EntityType, bool) {
	switch s {
	case "brand", "brands":
		return EntityBrand, true
	case "attribute", "attributes":
		return EntityAttribute, true
	case "variant", "variants":
		return EntityVariant, true
	case "customer", "customers":
		return EntityCustomer, true
	}
	return "", false
}

// ExternalEntity is the shared row shape of every simple vendor entity.
// ExternalID is the vendor's identifier and never changes once stored.
type ExternalEntity struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID string    `gorm:"column:external_id;size:100;not null;uniqueIndex" json:"external_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Brand is a vendor brand
type Brand struct {
	ExternalEntity
}

// TableName specifies the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// Attribute is a product attribute such as Color or Size
type Attribute struct {
	ExternalEntity
	Values []AttributeValue `gorm:"foreignKey:AttributeID" json:"values,omitempty"`
}

// TableName specifies the table name for GORM
func (Attribute) TableName() string {
	return "attributes"
}

// VendorVariant is a vendor-side variant reference from the variants list endpoint
type VendorVariant struct {
	ExternalEntity
}

// TableName specifies the table name for GORM
func (VendorVariant) TableName() string {
	return "vendor_variants"
}

// Customer is a party that can receive negotiated prices
type Customer struct {
	ExternalEntity
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// AttributeValue is one value of an attribute, unique by name within its attribute
type AttributeValue struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AttributeID int64     `gorm:"not null;uniqueIndex:idx_attribute_value_name" json:"attribute_id"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:idx_attribute_value_name" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (AttributeValue) TableName() string {
	return "attribute_values"
}
