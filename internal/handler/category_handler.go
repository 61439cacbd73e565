package handler

import (
	"net/http"

	"lumident/internal/catalog"
	"lumident/internal/model"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service *catalog.Service, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalog: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/categories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeError(w, r, http.StatusBadGateway, model.ErrCodeRemoteError, "failed to retrieve categories", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
