package catalog

import (
	"context"
	"errors"

	"lumident/internal/cms"
	"lumident/internal/config"
	"lumident/internal/model"
	"lumident/internal/resilience"

	"github.com/rs/zerolog"
)

// Content type identifiers in the CMS space.
const (
	contentTypeProduct  = "product"
	contentTypeCategory = "category"
)

// remoteSource reads the catalogue from the CMS, transforming entries into
// domain values. Every outbound call is wrapped in the retry decorator.
//
// Batch policy: an entry that fails transformation is logged and skipped; the
// rest of the batch is served. A partially broken catalogue stays browsable.
type remoteSource struct {
	client *cms.Client
	image  config.ImageConfig
	logger zerolog.Logger
	retry  []resilience.RetryOption
}

// NewRemoteSource creates a CMS-backed catalogue source.
func NewRemoteSource(client *cms.Client, image config.ImageConfig, logger zerolog.Logger, retryOpts ...resilience.RetryOption) Source {
	return &remoteSource{
		client: client,
		image:  image,
		logger: logger.With().Str("component", "remote-source").Logger(),
		retry:  retryOpts,
	}
}

// Products retrieves and transforms the whole catalogue.
func (s *remoteSource) Products(ctx context.Context) ([]model.Product, error) {
	col, err := s.entries(ctx, cms.Query{
		ContentType: contentTypeProduct,
		Order:       "fields.name",
	})
	if err != nil {
		return nil, err
	}
	return s.transformProducts(col), nil
}

// ProductBySlug retrieves one product via a field-equality filter.
func (s *remoteSource) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.one(ctx, cms.Query{
		ContentType: contentTypeProduct,
		Fields:      map[string]string{"slug": slug},
		Limit:       1,
	})
}

// ProductByID retrieves one product by its CMS identifier.
func (s *remoteSource) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	return s.one(ctx, cms.Query{
		ContentType: contentTypeProduct,
		Fields:      map[string]string{"sys.id": id},
		Limit:       1,
	})
}

// ProductsByCategory resolves the category slug to its entry ID, then filters
// products on the category reference.
func (s *remoteSource) ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	catCol, err := s.entries(ctx, cms.Query{
		ContentType: contentTypeCategory,
		Fields:      map[string]string{"slug": categorySlug},
		Limit:       1,
	})
	if err != nil {
		return nil, err
	}
	if len(catCol.Items) == 0 {
		return []model.Product{}, nil
	}

	col, err := s.entries(ctx, cms.Query{
		ContentType: contentTypeProduct,
		Fields:      map[string]string{"category.sys.id": catCol.Items[0].Sys.ID},
		Order:       "fields.name",
	})
	if err != nil {
		return nil, err
	}
	return s.transformProducts(col), nil
}

// Categories retrieves and transforms all categories.
func (s *remoteSource) Categories(ctx context.Context) ([]model.Category, error) {
	col, err := s.entries(ctx, cms.Query{
		ContentType: contentTypeCategory,
		Order:       "fields.name",
	})
	if err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(col.Items))
	for _, entry := range col.Items {
		category, err := cms.TransformCategory(entry)
		if err != nil {
			s.logger.Warn().Err(err).Str("entry_id", entry.Sys.ID).Msg("skipping malformed category entry")
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// Search retrieves products matching the free-text term.
func (s *remoteSource) Search(ctx context.Context, term string) ([]model.Product, error) {
	col, err := s.entries(ctx, cms.Query{
		ContentType: contentTypeProduct,
		Query:       term,
	})
	if err != nil {
		return nil, err
	}
	return s.transformProducts(col), nil
}

// entries performs one collection fetch under the retry decorator.
func (s *remoteSource) entries(ctx context.Context, q cms.Query) (*cms.EntryCollection, error) {
	return resilience.WithRetry(ctx, func(ctx context.Context) (*cms.EntryCollection, error) {
		return s.client.Entries(ctx, q)
	}, s.retry...)
}

// one fetches a single-product query and maps an empty page to not-found.
func (s *remoteSource) one(ctx context.Context, q cms.Query) (*model.Product, error) {
	col, err := s.entries(ctx, q)
	if err != nil {
		var remoteErr *model.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == 404 {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	if len(col.Items) == 0 {
		return nil, model.ErrProductNotFound
	}

	product, err := cms.TransformProduct(col.Items[0], col, s.image)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// transformProducts applies the skip-and-continue batch policy.
func (s *remoteSource) transformProducts(col *cms.EntryCollection) []model.Product {
	products := make([]model.Product, 0, len(col.Items))
	for _, entry := range col.Items {
		product, err := cms.TransformProduct(entry, col, s.image)
		if err != nil {
			s.logger.Warn().Err(err).Str("entry_id", entry.Sys.ID).Msg("skipping malformed product entry")
			continue
		}
		products = append(products, product)
	}
	return products
}
