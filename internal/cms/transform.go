package cms

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"lumident/internal/config"
	"lumident/internal/model"
)

// TransformProduct maps one CMS product entry into the domain shape. It is
// pure and deterministic: the same entry and includes always produce the same
// product.
//
// Mandatory fields are name, slug, sku, and price; absence of any one yields
// a *model.ValidationError. Reference fields are matched exhaustively against
// the collection's includes: unresolved category links fall back to
// "uncategorized", unresolved variant and image links are dropped.
func TransformProduct(entry Entry, col *EntryCollection, img config.ImageConfig) (model.Product, error) {
	name, ok := stringField(entry, "name")
	if !ok {
		return model.Product{}, &model.ValidationError{EntryID: entry.Sys.ID, Field: "name"}
	}
	slug, ok := stringField(entry, "slug")
	if !ok {
		return model.Product{}, &model.ValidationError{EntryID: entry.Sys.ID, Field: "slug"}
	}
	sku, ok := stringField(entry, "sku")
	if !ok {
		return model.Product{}, &model.ValidationError{EntryID: entry.Sys.ID, Field: "sku"}
	}
	price, ok := floatField(entry, "price")
	if !ok {
		return model.Product{}, &model.ValidationError{EntryID: entry.Sys.ID, Field: "price"}
	}

	product := model.Product{
		ID:       entry.Sys.ID,
		Name:     name,
		Slug:     slug,
		SKU:      sku,
		Price:    int(math.Round(price)),
		Category: resolveCategoryName(entry, col),
		Variants: resolveVariants(entry, col),
		Images:   resolveImages(entry, col, img),
		InStock:  true,
		Featured: false,
	}

	if compareAt, ok := floatField(entry, "compareAtPrice"); ok {
		rounded := int(math.Round(compareAt))
		product.CompareAtPrice = &rounded
	}
	if short, ok := stringField(entry, "shortDescription"); ok {
		product.ShortDescription = short
	}
	if description, ok := stringField(entry, "description"); ok {
		product.Description = description
	}
	if inStock, ok := boolField(entry, "inStock"); ok {
		product.InStock = inStock
	}
	if quantity, ok := floatField(entry, "stockQuantity"); ok {
		rounded := int(math.Round(quantity))
		product.StockQuantity = &rounded
	}
	if featured, ok := boolField(entry, "featured"); ok {
		product.Featured = featured
	}
	if badges, ok := stringListField(entry, "trustBadges"); ok && len(badges) > 0 {
		product.TrustBadges = badges
	}

	return product, nil
}

// TransformCategory maps one CMS category entry into the domain shape.
func TransformCategory(entry Entry) (model.Category, error) {
	name, ok := stringField(entry, "name")
	if !ok {
		return model.Category{}, &model.ValidationError{EntryID: entry.Sys.ID, Field: "name"}
	}
	slug, ok := stringField(entry, "slug")
	if !ok {
		return model.Category{}, &model.ValidationError{EntryID: entry.Sys.ID, Field: "slug"}
	}

	category := model.Category{Name: name, Slug: slug}
	if description, ok := stringField(entry, "description"); ok {
		category.Description = description
	}
	return category, nil
}

// resolveCategoryName extracts the display name of the referenced category.
// A raw link identifier must never reach the view layer, so unresolved or
// absent references fall back to "uncategorized".
func resolveCategoryName(entry Entry, col *EntryCollection) string {
	switch ref := referenceField(entry, col, "category").(type) {
	case ResolvedEntry:
		if name, ok := stringField(ref.Entry, "name"); ok {
			return name
		}
		return "uncategorized"
	case ResolvedAsset, UnresolvedLink, nil:
		return "uncategorized"
	default:
		return "uncategorized"
	}
}

// resolveVariants keeps resolved variant entries only. A product with no
// resolvable variants has a nil Variants field, not an empty one.
func resolveVariants(entry Entry, col *EntryCollection) []model.Variant {
	var variants []model.Variant
	for _, ref := range referenceListField(entry, col, "variants") {
		switch ref := ref.(type) {
		case ResolvedEntry:
			name, ok := stringField(ref.Entry, "name")
			if !ok {
				continue
			}
			modifier, _ := floatField(ref.Entry, "priceModifier")
			variants = append(variants, model.Variant{
				Name:          name,
				PriceModifier: int(math.Round(modifier)),
			})
		case ResolvedAsset, UnresolvedLink:
			// dropped silently
		}
	}
	return variants
}

// resolveImages builds optimised, protocol-qualified URLs for the resolved
// image assets. The result always holds at least one URL: the configured
// placeholder is substituted when the entry has none.
func resolveImages(entry Entry, col *EntryCollection, img config.ImageConfig) []string {
	var images []string
	for _, ref := range referenceListField(entry, col, "images") {
		switch ref := ref.(type) {
		case ResolvedAsset:
			if ref.Asset.Fields.File.URL != "" {
				images = append(images, OptimizedImageURL(ref.Asset.Fields.File.URL, img))
			}
		case ResolvedEntry, UnresolvedLink:
			// dropped silently
		}
	}
	if len(images) == 0 {
		images = []string{img.Placeholder}
	}
	return images
}

// OptimizedImageURL qualifies a possibly protocol-relative asset URL and
// appends the display-optimisation parameters (target size, crop-to-fill,
// quality) as query parameters.
func OptimizedImageURL(raw string, img config.ImageConfig) string {
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	params := u.Query()
	params.Set("w", strconv.Itoa(img.Width))
	params.Set("h", strconv.Itoa(img.Height))
	params.Set("fit", "fill")
	params.Set("q", strconv.Itoa(img.Quality))
	u.RawQuery = params.Encode()
	return u.String()
}

func stringField(e Entry, field string) (string, bool) {
	raw, ok := e.Fields[field]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func floatField(e Entry, field string) (float64, bool) {
	raw, ok := e.Fields[field]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func boolField(e Entry, field string) (bool, bool) {
	raw, ok := e.Fields[field]
	if !ok {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

func stringListField(e Entry, field string) ([]string, bool) {
	raw, ok := e.Fields[field]
	if !ok {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}
