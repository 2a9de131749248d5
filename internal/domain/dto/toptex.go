package dto

import (
	"github.com/shopspring/decimal"
)

// AuthenticateRequest is the vendor authentication payload
type AuthenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticateResponse is the vendor authentication reply
type AuthenticateResponse struct {
	Token    string `json:"token"`
	ExpireAt string `json:"expire_at,omitempty"`
}

// CatalogLinkResponse carries the bulk export link under either key
type CatalogLinkResponse struct {
	Link string `json:"link"`
	URL  string `json:"url"`
}

// Location returns the export link, preferring "link" over "url"
func (r CatalogLinkResponse) Location() string {
	if r.Link != "" {
		return r.Link
	}
	return r.URL
}

// VendorEntity is one item of a simple list endpoint (brands, attributes, variants)
type VendorEntity struct {
	ID   FlexibleID    `json:"id"`
	Name LocalizedText `json:"name"`
}

// VendorProduct is one record of the bulk catalog export
type VendorProduct struct {
	CatalogReference string        `json:"catalogReference"`
	ProductReference string        `json:"productReference"`
	Brand            NameField     `json:"brand"`
	Designation      LocalizedText `json:"designation"`
	Description      LocalizedText `json:"description"`
	Images           []VendorImage `json:"images"`
	Colors           []VendorColor `json:"colors"`
}

// VendorImage is a product level picture
type VendorImage struct {
	URLImage string `json:"url_image"`
	URL      string `json:"url"`
}

// Link returns whichever URL key the vendor filled
func (i VendorImage) Link() string {
	if i.URLImage != "" {
		return i.URLImage
	}
	return i.URL
}

// VendorColor groups the sizes and packshots of one color
type VendorColor struct {
	Colors    LocalizedText             `json:"colors"`
	Packshots map[string]VendorPackshot `json:"packshots"`
	Sizes     []VendorSize              `json:"sizes"`
}

// VendorPackshot is a studio shot of a color, keyed by angle (FACE, BACK, ...)
type VendorPackshot struct {
	URLPackshot string `json:"url_packshot"`
	URL         string `json:"url"`
}

// Link returns whichever URL key the vendor filled
func (p VendorPackshot) Link() string {
	if p.URLPackshot != "" {
		return p.URLPackshot
	}
	return p.URL
}

// VendorSize is the sellable unit of a color
type VendorSize struct {
	Size   string        `json:"size"`
	SKU    string        `json:"sku"`
	Prices []VendorPrice `json:"prices"`
}

// VendorPrice is one price break; the first listed is the unit cost
type VendorPrice struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity,omitempty"`
}
