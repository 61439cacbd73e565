package handler

import (
	"net/http"

	"lumident/internal/catalog"
	"lumident/internal/model"

	"github.com/rs/zerolog"
)

// AdminHandler exposes operational endpoints, protected by API-key auth.
type AdminHandler struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service *catalog.Service, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// FlushCache handles POST /api/cache/flush requests. Used after content is
// edited in the CMS so readers see the change without waiting out the TTL.
func (h *AdminHandler) FlushCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	h.catalog.Invalidate()
	h.logger.Info().Msg("cache flushed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}
