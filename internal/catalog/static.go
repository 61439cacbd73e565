package catalog

import (
	"context"
	"strings"

	"lumident/internal/model"
)

// staticSource serves an immutable in-memory catalogue. It backs the shop
// when no CMS is configured and acts as the seed content for new
// deployments.
type staticSource struct {
	products   []model.Product
	categories []model.Category
}

// NewStaticSource creates a source over a fixed catalogue. Products are
// normalised so the image invariant holds regardless of the input data.
func NewStaticSource(products []model.Product, categories []model.Category, placeholder string) Source {
	normalised := make([]model.Product, len(products))
	copy(normalised, products)
	for i := range normalised {
		if len(normalised[i].Images) == 0 {
			normalised[i].Images = []string{placeholder}
		}
	}
	return &staticSource{products: normalised, categories: categories}
}

// NewSeedSource returns a static source over the built-in clinic catalogue.
func NewSeedSource(placeholder string) Source {
	return NewStaticSource(seedProducts, seedCategories, placeholder)
}

func (s *staticSource) Products(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *staticSource) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			product := p
			return &product, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (s *staticSource) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (s *staticSource) ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	name := categorySlug
	for _, c := range s.categories {
		if c.Slug == categorySlug {
			name = c.Name
			break
		}
	}

	matched := make([]model.Product, 0)
	for _, p := range s.products {
		if strings.EqualFold(p.Category, name) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *staticSource) Categories(ctx context.Context) ([]model.Category, error) {
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// Search performs a case-insensitive substring match over name, descriptions,
// and category.
func (s *staticSource) Search(ctx context.Context, term string) ([]model.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []model.Product{}, nil
	}

	matched := make([]model.Product, 0)
	for _, p := range s.products {
		haystack := strings.ToLower(p.Name + " " + p.ShortDescription + " " + p.Description + " " + p.Category)
		if strings.Contains(haystack, needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func intPtr(v int) *int {
	return &v
}

// seedCategories and seedProducts are the built-in mock catalogue served when
// neither a CMS nor a catalogue file is configured.
var seedCategories = []model.Category{
	{Name: "Skincare", Slug: "skincare", Description: "Clinic-grade facial and body care"},
	{Name: "Dental Care", Slug: "dental-care", Description: "Professional whitening and oral hygiene"},
	{Name: "Treatment Kits", Slug: "treatment-kits", Description: "Combined at-home treatment programmes"},
}

var seedProducts = []model.Product{
	{
		ID:               "seed-whitening-kit",
		Name:             "Professional Whitening Kit",
		Slug:             "professional-whitening-kit",
		SKU:              "LUM-WK-01",
		Price:            24900,
		CompareAtPrice:   intPtr(29900),
		ShortDescription: "At-home whitening with clinic-grade gel",
		Description:      "Two-week whitening programme with custom trays, 16% carbamide peroxide gel and a desensitising rinse.",
		Images:           []string{"https://images.lumident.mx/products/whitening-kit.jpg"},
		Category:         "Dental Care",
		InStock:          true,
		StockQuantity:    intPtr(42),
		Featured:         true,
		TrustBadges:      []string{"Dentist approved", "Enamel safe"},
	},
	{
		ID:               "seed-vitamin-c-serum",
		Name:             "Vitamin C Brightening Serum",
		Slug:             "vitamin-c-brightening-serum",
		SKU:              "LUM-SC-02",
		Price:            15500,
		ShortDescription: "Daily antioxidant serum for radiant skin",
		Description:      "Stabilised 15% vitamin C with hyaluronic acid. Lightweight, fast absorbing, fragrance free.",
		Images:           []string{"https://images.lumident.mx/products/vitamin-c-serum.jpg"},
		Category:         "Skincare",
		Variants: []model.Variant{
			{Name: "30ml", PriceModifier: 0},
			{Name: "50ml", PriceModifier: 6500},
		},
		InStock:  true,
		Featured: true,
	},
	{
		ID:               "seed-enamel-toothpaste",
		Name:             "Enamel Repair Toothpaste",
		Slug:             "enamel-repair-toothpaste",
		SKU:              "LUM-DC-03",
		Price:            3900,
		ShortDescription: "Remineralising fluoride toothpaste",
		Images:           []string{"https://images.lumident.mx/products/enamel-toothpaste.jpg"},
		Category:         "Dental Care",
		InStock:          true,
		StockQuantity:    intPtr(120),
	},
	{
		ID:               "seed-retinol-night-cream",
		Name:             "Retinol Renewal Night Cream",
		Slug:             "retinol-renewal-night-cream",
		SKU:              "LUM-SC-04",
		Price:            18900,
		CompareAtPrice:   intPtr(22900),
		ShortDescription: "Overnight renewal with encapsulated retinol",
		Images:           []string{"https://images.lumident.mx/products/retinol-cream.jpg"},
		Category:         "Skincare",
		InStock:          true,
	},
	{
		ID:               "seed-glow-bundle",
		Name:             "Radiant Glow Starter Bundle",
		Slug:             "radiant-glow-starter-bundle",
		SKU:              "LUM-TK-05",
		Price:            32900,
		ShortDescription: "Serum, night cream and SPF in one kit",
		Images:           []string{"https://images.lumident.mx/products/glow-bundle.jpg"},
		Category:         "Treatment Kits",
		InStock:          true,
		Featured:         true,
		TrustBadges:      []string{"Best seller"},
	},
	{
		ID:               "seed-sensitive-mouthwash",
		Name:             "Sensitive Care Mouthwash",
		Slug:             "sensitive-care-mouthwash",
		SKU:              "LUM-DC-06",
		Price:            4500,
		ShortDescription: "Alcohol-free rinse for sensitive gums",
		Images:           []string{"https://images.lumident.mx/products/mouthwash.jpg"},
		Category:         "Dental Care",
		InStock:          false,
	},
}
