package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumident/internal/catalog"
	"lumident/internal/cms"
	"lumident/internal/config"
	"lumident/internal/handler"
	"lumident/internal/resilience"
	"lumident/internal/router"
	"lumident/internal/whatsapp"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("catalog_source", cfg.Catalog.Source).Msg("starting lumident storefront API")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Choose the product source once, at the application boundary.
	source, err := buildSource(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog source: %w", err)
	}

	// Initialize the query layer with its own cache instance
	cache := resilience.NewCache(cfg.Cache.TTL)
	catalogService := catalog.NewService(source, cache, logger)

	// Initialize the WhatsApp checkout composer
	composer := whatsapp.NewComposer(cfg.WhatsApp.Number)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(catalogService, logger)
	categoryHandler := handler.NewCategoryHandler(catalogService, logger)
	orderHandler := handler.NewOrderHandler(catalogService, composer, logger)
	adminHandler := handler.NewAdminHandler(catalogService, logger)

	// Initialize router
	mux := router.New(productHandler, categoryHandler, orderHandler, adminHandler, cfg.Admin.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// buildSource constructs the configured product source: the CMS-backed
// remote source, or the static catalogue (from S3, a local file, or the
// built-in seed data).
func buildSource(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (catalog.Source, error) {
	if cfg.Catalog.Source == config.SourceRemote {
		client, err := cms.Default(cfg.CMS, logger)
		if err != nil {
			return nil, err
		}
		return catalog.NewRemoteSource(client, cfg.Image, logger), nil
	}

	if cfg.Catalog.File == "" {
		logger.Info().Msg("no catalogue file configured, using built-in seed catalogue")
		return catalog.NewSeedSource(cfg.Image.Placeholder), nil
	}

	// Load the static catalogue, trying S3 first when enabled.
	fileLoader := catalog.NewFileLoader(logger)
	var loader catalog.Loader = fileLoader

	if cfg.Catalog.S3.Enabled {
		s3Loader, err := catalog.NewS3Loader(ctx, cfg.Catalog.S3.Bucket, cfg.Catalog.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Catalog.S3.Prefix, true, logger)
		}
	}

	file, err := loader.Load(ctx, cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue file: %w", err)
	}

	return catalog.NewStaticSource(file.Products, file.Categories, cfg.Image.Placeholder), nil
}
