package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"lumident/internal/model"
	"lumident/internal/resilience"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Windows holds the freshness duration per use case: shorter for volatile
// data, longer for stable reference data. Data past its freshness window is
// still servable for one more window's length (the retention window, 2x
// freshness) while a background refresh runs, then it is purged.
type Windows struct {
	Catalog    time.Duration // catalogue-wide queries
	Item       time.Duration // single-item lookups by slug or id
	Categories time.Duration
	Search     time.Duration
}

// DefaultWindows returns the production freshness windows.
func DefaultWindows() Windows {
	return Windows{
		Catalog:    5 * time.Minute,
		Item:       10 * time.Minute,
		Categories: 15 * time.Minute,
		Search:     3 * time.Minute,
	}
}

// Filter is the composed product filter. Exactly one fetch strategy is
// chosen (search over category over all); Featured and InStock are applied
// afterwards as client-side predicates.
type Filter struct {
	Category string
	Search   string
	Featured *bool
	InStock  *bool
}

// Service is the read layer between handlers and a Source. It caches
// results per use case, coalesces concurrent identical calls, serves stale
// data while revalidating in the background, and normalises errors before
// they reach view code.
type Service struct {
	source  Source
	cache   *resilience.Cache
	flights singleflight.Group
	windows Windows
	logger  zerolog.Logger

	revalidateTimeout time.Duration
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithWindows overrides the freshness windows.
func WithWindows(w Windows) ServiceOption {
	return func(s *Service) {
		s.windows = w
	}
}

// NewService creates the catalogue query service.
func NewService(source Source, cache *resilience.Cache, logger zerolog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		source:            source,
		cache:             cache,
		windows:           DefaultWindows(),
		logger:            logger.With().Str("component", "catalog-service").Logger(),
		revalidateTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Products returns the whole catalogue.
func (s *Service) Products(ctx context.Context) ([]model.Product, error) {
	return lookup(ctx, s, "products:all", s.windows.Catalog, s.source.Products)
}

// FeaturedProducts returns the catalogue's featured subset. It shares the
// catalogue-wide fetch and cache entry.
func (s *Service) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	featured := make([]model.Product, 0)
	for _, p := range products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// ProductBySlug returns one product. An empty slug is a precondition, not an
// error: the source is never contacted and a nil product is returned.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	return lookup(ctx, s, "product:slug:"+slug, s.windows.Item, func(ctx context.Context) (*model.Product, error) {
		return s.source.ProductBySlug(ctx, slug)
	})
}

// ProductByID returns one product by its identifier, with the same empty
// parameter precondition as ProductBySlug.
func (s *Service) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	return lookup(ctx, s, "product:id:"+id, s.windows.Item, func(ctx context.Context) (*model.Product, error) {
		return s.source.ProductByID(ctx, id)
	})
}

// ProductsByCategory returns the products in one category. An empty category
// slug resolves to an empty result without contacting the source.
func (s *Service) ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return []model.Product{}, nil
	}
	return lookup(ctx, s, "products:category:"+categorySlug, s.windows.Catalog, func(ctx context.Context) ([]model.Product, error) {
		return s.source.ProductsByCategory(ctx, categorySlug)
	})
}

// Categories returns all categories.
func (s *Service) Categories(ctx context.Context) ([]model.Category, error) {
	return lookup(ctx, s, "categories", s.windows.Categories, s.source.Categories)
}

// Search returns products matching the term. A blank term resolves to an
// empty result without contacting the source.
func (s *Service) Search(ctx context.Context, term string) ([]model.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.Product{}, nil
	}
	return lookup(ctx, s, "search:"+strings.ToLower(term), s.windows.Search, func(ctx context.Context) ([]model.Product, error) {
		return s.source.Search(ctx, term)
	})
}

// Filter picks a fetch strategy from the supplied filters (search over
// category over all) and applies the remaining filters client-side.
func (s *Service) Filter(ctx context.Context, f Filter) ([]model.Product, error) {
	var (
		products []model.Product
		err      error
	)
	switch {
	case strings.TrimSpace(f.Search) != "":
		products, err = s.Search(ctx, f.Search)
	case strings.TrimSpace(f.Category) != "":
		products, err = s.ProductsByCategory(ctx, f.Category)
	default:
		products, err = s.Products(ctx)
	}
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// Invalidate drops all cached query results. Called after external content
// edits.
func (s *Service) Invalidate() {
	s.cache.Clear()
	s.logger.Info().Msg("catalogue cache invalidated")
}

// lookup is the shared accessor path: serve fresh cache hits, serve stale
// hits within retention while revalidating in the background, and coalesce
// concurrent fetches for the same key.
func lookup[T any](ctx context.Context, s *Service, key string, freshness time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	retention := 2 * freshness

	if value, age, ok := s.cache.Lookup(key); ok {
		if cached, ok := value.(T); ok {
			switch {
			case age <= freshness:
				return cached, nil
			case age <= retention:
				s.revalidate(key, func(ctx context.Context) (interface{}, error) {
					return fetch(ctx)
				})
				return cached, nil
			default:
				s.cache.Delete(key)
			}
		}
	}

	result, err, _ := s.flights.Do(key, func() (interface{}, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, value)
		return value, nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("cache_key", key).Msg("catalogue fetch failed")
		var zero T
		return zero, normalizeError(err)
	}
	return result.(T), nil
}

// revalidate refreshes one cache entry in the background. The refresh is
// detached from the caller's context so an abandoned request cannot cancel
// it mid-write, and coalesced with any concurrent fetch for the same key.
func (s *Service) revalidate(key string, fetch func(context.Context) (interface{}, error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.revalidateTimeout)
		defer cancel()

		_, err, _ := s.flights.Do(key, func() (interface{}, error) {
			value, err := fetch(ctx)
			if err != nil {
				return nil, err
			}
			s.cache.Set(key, value)
			return value, nil
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("cache_key", key).Msg("background revalidation failed")
		}
	}()
}

// normalizeError guarantees view code only ever sees domain-shaped errors.
func normalizeError(err error) error {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return model.WrapDomainError(model.ErrCodeInvalidEntry, "Catalogue entry is malformed", err)
	}
	return model.WrapDomainError(model.ErrCodeRemoteError, "Failed to reach the catalogue", err)
}
