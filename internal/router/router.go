package router

import (
	"net/http"

	"lumident/internal/handler"
	"lumident/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
	adminAPIKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.Get(w, r)
			return
		}
		productHandler.List(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	mux.HandleFunc("/api/categories", categoryHandler.List)
	mux.HandleFunc("/api/search", productHandler.Search)
	mux.HandleFunc("/api/orders/link", orderHandler.CreateLink)

	// Admin routes require the API key; the storefront API stays public.
	requireKey := middleware.APIKeyAuth(adminAPIKey, logger)
	mux.Handle("/api/cache/flush", requireKey(http.HandlerFunc(adminHandler.FlushCache)))

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.CorrelationID(h)
	h = middleware.Recovery(logger)(h)

	return h
}
