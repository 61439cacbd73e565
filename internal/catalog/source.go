package catalog

import (
	"context"

	"lumident/internal/model"
)

// Source provides read access to the product catalogue. The catalogue is
// externally owned; sources never mutate it.
//
// Not-found lookups return model.ErrProductNotFound. Which source backs the
// application is decided once, at startup.
type Source interface {
	// Products returns the whole catalogue.
	Products(ctx context.Context) ([]model.Product, error)

	// ProductBySlug returns the product with the given URL slug.
	ProductBySlug(ctx context.Context, slug string) (*model.Product, error)

	// ProductByID returns the product with the given CMS identifier.
	ProductByID(ctx context.Context, id string) (*model.Product, error)

	// ProductsByCategory returns the products in the category with the given slug.
	ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error)

	// Categories returns all categories.
	Categories(ctx context.Context) ([]model.Category, error)

	// Search returns products matching a free-text term.
	Search(ctx context.Context, term string) ([]model.Product, error)
}
