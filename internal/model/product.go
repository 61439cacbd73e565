package model

import "math"

// Product represents a sellable catalogue item.
//
// Products are owned by the CMS: the application only reads, transforms and
// caches snapshots. A Product value is immutable once built; staleness is
// resolved by re-fetching, never by patching.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	SKU              string    `json:"sku"`
	Price            int       `json:"price"`
	CompareAtPrice   *int      `json:"compareAtPrice,omitempty"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Description      string    `json:"description,omitempty"`
	Images           []string  `json:"images"`
	Category         string    `json:"category"`
	Variants         []Variant `json:"variants,omitempty"`
	InStock          bool      `json:"inStock"`
	StockQuantity    *int      `json:"stockQuantity,omitempty"`
	Featured         bool      `json:"featured"`
	TrustBadges      []string  `json:"trustBadges,omitempty"`
}

// Variant is a purchasable variation of a product. PriceModifier is added to
// the product's base price to compute the variant's effective price.
type Variant struct {
	Name          string `json:"name"`
	PriceModifier int    `json:"priceModifier"`
}

// Category groups products for navigation. Like products, categories are
// externally owned and read-only.
type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// HasDiscount reports whether the product should display a discount. A
// discount requires a compare-at price strictly greater than the base price.
func (p Product) HasDiscount() bool {
	return p.CompareAtPrice != nil && *p.CompareAtPrice > p.Price
}

// DiscountPercent returns the discount as a whole percentage, rounded to the
// nearest integer. Returns 0 when no discount applies.
func (p Product) DiscountPercent() int {
	if !p.HasDiscount() {
		return 0
	}
	compareAt := float64(*p.CompareAtPrice)
	return int(math.Round((compareAt - float64(p.Price)) / compareAt * 100))
}

// VariantByName returns the named variant, or nil if the product has no such
// variant.
func (p Product) VariantByName(name string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i]
		}
	}
	return nil
}
