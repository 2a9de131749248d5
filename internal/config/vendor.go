package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorConfig holds the TopTex API settings
type VendorConfig struct {
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`
	APIKey   string `yaml:"api_key" validate:"required"`
	BaseURL  string `yaml:"base_url" validate:"required,url"`

	APIKeyHeader      string        `yaml:"api_key_header"`
	AuthPath          string        `yaml:"auth_path"`
	CatalogPath       string        `yaml:"catalog_path"`
	BrandsPath        string        `yaml:"brands_path"`
	AttributesPath    string        `yaml:"attributes_path"`
	VariantsPath      string        `yaml:"variants_path"`
	UsageRight        string        `yaml:"usage_right"`
	Locale            string        `yaml:"locale"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// WithDefaults returns a copy with the optional fields filled
func (v VendorConfig) WithDefaults() VendorConfig {
	v.applyDefaults()
	return v
}

func (v *VendorConfig) applyDefaults() {
	if v.APIKeyHeader == "" {
		v.APIKeyHeader = "x-api-key"
	}
	if v.AuthPath == "" {
		v.AuthPath = "/v3/authenticate"
	}
	if v.CatalogPath == "" {
		v.CatalogPath = "/v3/products/all"
	}
	if v.BrandsPath == "" {
		v.BrandsPath = "/v3/attributes/brands"
	}
	if v.AttributesPath == "" {
		v.AttributesPath = "/v3/attributes"
	}
	if v.VariantsPath == "" {
		v.VariantsPath = "/v3/variants"
	}
	if v.UsageRight == "" {
		v.UsageRight = "b2b_uniquement"
	}
	if v.Locale == "" {
		v.Locale = "es"
	}
	if v.TokenTTL == 0 {
		v.TokenTTL = 60 * time.Minute
	}
	if v.Timeout == 0 {
		v.Timeout = 60 * time.Second
	}
}

// PricingConfig controls how vendor costs become sale prices
type PricingConfig struct {
	Markup    decimal.Decimal `yaml:"-"`
	RawMarkup string          `yaml:"markup"`
	Currency  string          `yaml:"currency"`
}

// DefaultMarkup is applied to the vendor cost to compute the list price
var DefaultMarkup = decimal.RequireFromString("1.25")

func (p *PricingConfig) applyDefaults() {
	p.Markup = DefaultMarkup
	if p.RawMarkup != "" {
		if m, err := decimal.NewFromString(p.RawMarkup); err == nil && m.IsPositive() {
			p.Markup = m
		}
	}
	if p.Currency == "" {
		p.Currency = "EUR"
	}
}
