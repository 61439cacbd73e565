package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumident/internal/catalog"
	"lumident/internal/model"
	"lumident/internal/resilience"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlaceholder = "https://placehold.co/800x800"

func fixtureProducts() []model.Product {
	return []model.Product{
		{
			ID:       "prod-1",
			Name:     "Vitamin C Serum",
			Slug:     "vitamin-c-serum",
			SKU:      "SRM-001",
			Price:    45000,
			Images:   []string{"https://images.example.net/serum.jpg"},
			Category: "Skincare",
			Variants: []model.Variant{
				{Name: "30ml", PriceModifier: 0},
				{Name: "50ml", PriceModifier: 15000},
			},
			InStock:  true,
			Featured: true,
		},
		{
			ID:       "prod-2",
			Name:     "Whitening Kit",
			Slug:     "whitening-kit",
			SKU:      "WKT-001",
			Price:    120000,
			Category: "Dental Care",
			InStock:  true,
		},
		{
			ID:       "prod-3",
			Name:     "Sensitive Mouthwash",
			Slug:     "sensitive-mouthwash",
			SKU:      "MWH-001",
			Price:    18000,
			Category: "Dental Care",
			InStock:  false,
		},
	}
}

func fixtureCategories() []model.Category {
	return []model.Category{
		{Name: "Skincare", Slug: "skincare"},
		{Name: "Dental Care", Slug: "dental-care"},
	}
}

// newTestCatalog builds a catalogue service over the fixture data with a
// fresh cache so tests never share state.
func newTestCatalog(t *testing.T) *catalog.Service {
	t.Helper()
	source := catalog.NewStaticSource(fixtureProducts(), fixtureCategories(), testPlaceholder)
	cache := resilience.NewCache(time.Minute)
	return catalog.NewService(source, cache, zerolog.Nop())
}

func decodeProducts(t *testing.T, rec *httptest.ResponseRecorder) []model.Product {
	t.Helper()
	var products []model.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&products))
	return products
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		expectedSlugs  []string
	}{
		{
			name:           "All products",
			method:         http.MethodGet,
			target:         "/api/products",
			expectedStatus: http.StatusOK,
			expectedSlugs:  []string{"vitamin-c-serum", "whitening-kit", "sensitive-mouthwash"},
		},
		{
			name:           "Featured only",
			method:         http.MethodGet,
			target:         "/api/products?featured=true",
			expectedStatus: http.StatusOK,
			expectedSlugs:  []string{"vitamin-c-serum"},
		},
		{
			name:           "In stock only",
			method:         http.MethodGet,
			target:         "/api/products?inStock=true",
			expectedStatus: http.StatusOK,
			expectedSlugs:  []string{"vitamin-c-serum", "whitening-kit"},
		},
		{
			name:           "By category",
			method:         http.MethodGet,
			target:         "/api/products?category=dental-care",
			expectedStatus: http.StatusOK,
			expectedSlugs:  []string{"whitening-kit", "sensitive-mouthwash"},
		},
		{
			name:           "Search term",
			method:         http.MethodGet,
			target:         "/api/products?q=serum",
			expectedStatus: http.StatusOK,
			expectedSlugs:  []string{"vitamin-c-serum"},
		},
		{
			name:           "Invalid featured parameter",
			method:         http.MethodGet,
			target:         "/api/products?featured=maybe",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid inStock parameter",
			method:         http.MethodGet,
			target:         "/api/products?inStock=sometimes",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPost,
			target:         "/api/products",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewProductHandler(newTestCatalog(t), logger)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()
			handler.List(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			products := decodeProducts(t, rec)
			slugs := make([]string, 0, len(products))
			for _, p := range products {
				slugs = append(slugs, p.Slug)
			}
			assert.ElementsMatch(t, tt.expectedSlugs, slugs)
		})
	}
}

func TestProductHandler_Get(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedSlug   string
	}{
		{
			name:           "Found by slug",
			target:         "/api/products/whitening-kit",
			expectedStatus: http.StatusOK,
			expectedSlug:   "whitening-kit",
		},
		{
			name:           "Found by ID when slug misses",
			target:         "/api/products/prod-1",
			expectedStatus: http.StatusOK,
			expectedSlug:   "vitamin-c-serum",
		},
		{
			name:           "Not found",
			target:         "/api/products/no-such-product",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewProductHandler(newTestCatalog(t), logger)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			handler.Get(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				var errResp model.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, model.ErrCodeProductNotFound, errResp.Error)
				return
			}

			var product model.Product
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&product))
			assert.Equal(t, tt.expectedSlug, product.Slug)
		})
	}
}

func TestProductHandler_Get_PlaceholderImage(t *testing.T) {
	// The whitening kit fixture has no images, so the static source must
	// substitute the placeholder before it reaches the wire.
	handler := NewProductHandler(newTestCatalog(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/whitening-kit", nil)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var product model.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&product))
	require.Len(t, product.Images, 1)
	assert.Equal(t, testPlaceholder, product.Images[0])
}

func TestProductHandler_Search(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Matching term", func(t *testing.T) {
		handler := NewProductHandler(newTestCatalog(t), logger)

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=mouthwash", nil)
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		products := decodeProducts(t, rec)
		require.Len(t, products, 1)
		assert.Equal(t, "sensitive-mouthwash", products[0].Slug)
	})

	t.Run("Empty term returns no results", func(t *testing.T) {
		handler := NewProductHandler(newTestCatalog(t), logger)

		req := httptest.NewRequest(http.MethodGet, "/api/search?q=", nil)
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeProducts(t, rec))
	})
}

func TestCategoryHandler_List(t *testing.T) {
	handler := NewCategoryHandler(newTestCatalog(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var categories []model.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&categories))
	assert.Len(t, categories, 2)
}
