package handler

import (
	"errors"
	"net/http"
	"strconv"

	"lumident/internal/catalog"
	"lumident/internal/model"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *catalog.Service, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with optional filters: q (search),
// category, featured, inStock.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	params := r.URL.Query()
	filter := catalog.Filter{
		Search:   params.Get("q"),
		Category: params.Get("category"),
	}

	if raw := params.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "invalid featured parameter", h.logger)
			return
		}
		filter.Featured = &featured
	}

	if raw := params.Get("inStock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "invalid inStock parameter", h.logger)
			return
		}
		filter.InStock = &inStock
	}

	products, err := h.catalog.Filter(r.Context(), filter)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, model.ErrCodeRemoteError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{idOrSlug} requests. The path segment is
// looked up as a slug first, then as a CMS identifier.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/products/{idOrSlug}
	path := r.URL.Path
	if len(path) <= len("/api/products/") {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "product identifier is required", h.logger)
		return
	}
	idOrSlug := path[len("/api/products/"):]

	product, err := h.catalog.ProductBySlug(r.Context(), idOrSlug)
	if err != nil && errors.Is(err, model.ErrProductNotFound) {
		product, err = h.catalog.ProductByID(r.Context(), idOrSlug)
	}
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found", h.logger)
			return
		}
		writeError(w, r, http.StatusBadGateway, model.ErrCodeRemoteError, "failed to retrieve product", h.logger)
		return
	}

	if product == nil {
		writeError(w, r, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Search handles GET /api/search?q= requests.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	products, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, http.StatusBadGateway, model.ErrCodeRemoteError, "search failed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}
