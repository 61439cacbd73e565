package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Catalog source selectors.
const (
	SourceRemote = "remote"
	SourceStatic = "static"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	CMS      CMSConfig
	Catalog  CatalogConfig
	Image    ImageConfig
	Cache    CacheConfig
	WhatsApp WhatsAppConfig
	Admin    AdminConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CMSConfig holds the headless CMS delivery API credentials. The preview
// token, when set, switches the client to the preview host and authorises
// unpublished content.
type CMSConfig struct {
	SpaceID      string
	AccessToken  string
	PreviewToken string
	Environment  string
	BaseURL      string // overrides host selection; used for proxies and tests
}

// CatalogConfig selects and configures the product source.
type CatalogConfig struct {
	Source string // "remote" or "static"
	File   string // static catalogue JSON path
	S3     S3Config
}

// S3Config holds AWS S3 configuration for the static catalogue file.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// ImageConfig holds the display-optimisation parameters appended to CMS asset
// URLs, and the placeholder used when a product has no images.
type ImageConfig struct {
	Width       int
	Height      int
	Quality     int
	Placeholder string
}

// CacheConfig holds the resilience cache TTL.
type CacheConfig struct {
	TTL time.Duration
}

// WhatsAppConfig holds the checkout recipient.
type WhatsAppConfig struct {
	Number string
}

// AdminConfig holds the key protecting mutating admin endpoints (cache flush).
type AdminConfig struct {
	APIKey string
}

// Load loads configuration from environment variables. A local .env file, if
// present, is read first; absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		CMS: CMSConfig{
			SpaceID:      getEnv("CMS_SPACE_ID", ""),
			AccessToken:  getEnv("CMS_ACCESS_TOKEN", ""),
			PreviewToken: getEnv("CMS_PREVIEW_TOKEN", ""),
			Environment:  getEnv("CMS_ENVIRONMENT", "master"),
			BaseURL:      getEnv("CMS_BASE_URL", ""),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", defaultSource()),
			File:   getEnv("CATALOG_FILE", ""),
			S3: S3Config{
				Enabled: getEnvAsBool("S3_ENABLED", false),
				Bucket:  getEnv("S3_BUCKET", ""),
				Region:  getEnv("S3_REGION", "us-east-1"),
				Prefix:  getEnv("S3_PREFIX", "catalog/"),
			},
		},
		Image: ImageConfig{
			Width:       getEnvAsInt("IMAGE_WIDTH", 800),
			Height:      getEnvAsInt("IMAGE_HEIGHT", 800),
			Quality:     getEnvAsInt("IMAGE_QUALITY", 80),
			Placeholder: getEnv("PLACEHOLDER_IMAGE_URL", "https://placehold.co/800x800?text=Lumident"),
		},
		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		WhatsApp: WhatsAppConfig{
			Number: getEnv("WHATSAPP_NUMBER", ""),
		},
		Admin: AdminConfig{
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// defaultSource picks the remote catalogue when CMS credentials are present,
// the static one otherwise. The choice is made once, at the application
// boundary.
func defaultSource() string {
	if os.Getenv("CMS_SPACE_ID") != "" && os.Getenv("CMS_ACCESS_TOKEN") != "" {
		return SourceRemote
	}
	return SourceStatic
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Catalog.Source != SourceRemote && c.Catalog.Source != SourceStatic {
		return fmt.Errorf("invalid catalog source: %s (must be remote or static)", c.Catalog.Source)
	}

	if c.Catalog.Source == SourceRemote {
		if c.CMS.SpaceID == "" {
			return fmt.Errorf("CMS space ID is required for the remote catalog source")
		}
		if c.CMS.AccessToken == "" {
			return fmt.Errorf("CMS access token is required for the remote catalog source")
		}
	}

	if c.Catalog.S3.Enabled {
		if c.Catalog.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Catalog.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Image.Width < 1 || c.Image.Height < 1 {
		return fmt.Errorf("image dimensions must be positive")
	}

	if c.Image.Quality < 1 || c.Image.Quality > 100 {
		return fmt.Errorf("image quality must be between 1 and 100")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}

	if strings.TrimSpace(c.WhatsApp.Number) == "" {
		return fmt.Errorf("WhatsApp number is required")
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UsesPreview reports whether the preview endpoint and credential should be
// used. Decided once at client construction, never re-evaluated per call.
func (c *CMSConfig) UsesPreview() bool {
	return c.PreviewToken != ""
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
