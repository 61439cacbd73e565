package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lumident/internal/catalog"
	"lumident/internal/model"
	"lumident/internal/whatsapp"

	"github.com/rs/zerolog"
)

// OrderHandler composes WhatsApp checkout links. Orders are never persisted:
// the hand-off to the chat is the whole checkout flow.
type OrderHandler struct {
	catalog  *catalog.Service
	composer *whatsapp.Composer
	logger   zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service *catalog.Service, composer *whatsapp.Composer, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		catalog:  service,
		composer: composer,
		logger:   logger.With().Str("handler", "order").Logger(),
	}
}

// CreateLink handles POST /api/orders/link requests.
func (h *OrderHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeInternalError, "method not allowed", h.logger)
		return
	}

	var req model.OrderLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if strings.TrimSpace(req.ProductID) == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "productId is required", h.logger)
		return
	}
	if req.Quantity < 1 {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidQuantity, model.ErrInvalidQuantity.Message, h.logger)
		return
	}

	product, err := h.catalog.ProductByID(r.Context(), req.ProductID)
	if err != nil && errors.Is(err, model.ErrProductNotFound) {
		product, err = h.catalog.ProductBySlug(r.Context(), req.ProductID)
	}
	if err != nil || product == nil {
		if err == nil || errors.Is(err, model.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found", h.logger)
			return
		}
		writeError(w, r, http.StatusBadGateway, model.ErrCodeRemoteError, "failed to retrieve product", h.logger)
		return
	}

	order := model.OrderDetails{
		Product:  *product,
		Quantity: req.Quantity,
	}
	if req.Variant != "" {
		variant := product.VariantByName(req.Variant)
		if variant == nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeVariantNotFound, model.ErrVariantNotFound.Message, h.logger)
			return
		}
		order.SelectedVariant = variant
	}

	h.logger.Info().
		Str("product_id", product.ID).
		Str("variant", req.Variant).
		Int("quantity", req.Quantity).
		Int("total", order.Total()).
		Msg("composed checkout link")

	writeJSON(w, http.StatusOK, model.OrderLinkResponse{
		Link:    h.composer.OrderLink(order),
		Message: h.composer.OrderMessage(order),
		Total:   order.Total(),
	})
}
