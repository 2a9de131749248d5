package dto

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// DefaultBrand is used when a vendor record carries no brand
const DefaultBrand = "TopTex"

// PackshotFace is the packshot angle used as variant picture
const PackshotFace = "FACE"

// VariantKey addresses one color x size combination by display names.
// An axis the product does not have is keyed by "".
type VariantKey struct {
	Color string
	Size  string
}

// VariantOffer is what the vendor sells for one combination
type VariantOffer struct {
	SKU         string
	Cost        decimal.Decimal
	HasCost     bool
	PackshotURL string
}

// ProductRecord is a vendor product decoded into the fields the import needs
type ProductRecord struct {
	Reference   string
	Brand       string
	Designation string
	Name        string
	Description string
	ColorNames  []string
	SizeNames   []string
	ImageURLs   []string
	Offers      map[VariantKey]VariantOffer
}

// ResolveReference picks catalogReference, then productReference, then ""
func ResolveReference(p VendorProduct) string {
	if ref := strings.TrimSpace(p.CatalogReference); ref != "" {
		return ref
	}
	return strings.TrimSpace(p.ProductReference)
}

// ResolveBrand returns the vendor brand or DefaultBrand
func ResolveBrand(p VendorProduct) string {
	if brand := strings.TrimSpace(string(p.Brand)); brand != "" {
		return brand
	}
	return DefaultBrand
}

// DisplayName builds "<brand> <designation>"
func DisplayName(brand, designation string) string {
	return strings.TrimSpace(brand + " " + strings.TrimSpace(designation))
}

// FirstCost returns the first listed price of a size.
// A missing, null or non-positive first price reports no cost.
func FirstCost(s VendorSize) (decimal.Decimal, bool) {
	if len(s.Prices) == 0 || !s.Prices[0].Price.IsPositive() {
		return decimal.Zero, false
	}
	return s.Prices[0].Price, true
}

// DecodeProduct converts a vendor product into a ProductRecord.
// Colors and sizes keep first-seen order; duplicates collapse.
// A blank color or size is not an axis value but its offer is still kept.
func DecodeProduct(p VendorProduct, locale language.Tag) ProductRecord {
	brand := ResolveBrand(p)
	designation := p.Designation.Pick(locale)

	rec := ProductRecord{
		Reference:   ResolveReference(p),
		Brand:       brand,
		Designation: designation,
		Name:        DisplayName(brand, designation),
		Description: p.Description.Pick(locale),
		Offers:      make(map[VariantKey]VariantOffer),
	}

	seenColors := make(map[string]bool)
	seenSizes := make(map[string]bool)
	seenImages := make(map[string]bool)
	addImage := func(url string) {
		url = strings.TrimSpace(url)
		if url == "" || seenImages[url] {
			return
		}
		seenImages[url] = true
		rec.ImageURLs = append(rec.ImageURLs, url)
	}

	for _, img := range p.Images {
		addImage(img.Link())
	}

	for _, c := range p.Colors {
		color := strings.TrimSpace(c.Colors.Pick(locale))
		if color != "" && !seenColors[color] {
			seenColors[color] = true
			rec.ColorNames = append(rec.ColorNames, color)
		}

		packshot := ""
		if face, ok := c.Packshots[PackshotFace]; ok {
			packshot = strings.TrimSpace(face.Link())
		}
		addImage(packshot)

		for _, s := range c.Sizes {
			size := strings.TrimSpace(s.Size)
			if size != "" && !seenSizes[size] {
				seenSizes[size] = true
				rec.SizeNames = append(rec.SizeNames, size)
			}

			key := VariantKey{Color: color, Size: size}
			if _, exists := rec.Offers[key]; exists {
				continue
			}
			cost, hasCost := FirstCost(s)
			rec.Offers[key] = VariantOffer{
				SKU:         strings.TrimSpace(s.SKU),
				Cost:        cost,
				HasCost:     hasCost,
				PackshotURL: packshot,
			}
		}
	}

	return rec
}
