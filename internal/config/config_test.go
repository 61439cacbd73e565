package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name: "Success with minimal required config",
			envVars: map[string]string{
				"WHATSAPP_NUMBER": "5215512345678",
			},
			expectError: false,
		},
		{
			name: "Success with all config specified",
			envVars: map[string]string{
				"SERVER_HOST":           "localhost",
				"SERVER_PORT":           "9090",
				"LOG_LEVEL":             "debug",
				"LOG_FORMAT":            "console",
				"CMS_SPACE_ID":          "space123",
				"CMS_ACCESS_TOKEN":      "token123",
				"CMS_PREVIEW_TOKEN":     "preview123",
				"CMS_ENVIRONMENT":       "staging",
				"CATALOG_SOURCE":        "remote",
				"IMAGE_WIDTH":           "600",
				"IMAGE_HEIGHT":          "400",
				"IMAGE_QUALITY":         "70",
				"CACHE_TTL":             "10m",
				"WHATSAPP_NUMBER":       "5215512345678",
				"PLACEHOLDER_IMAGE_URL": "https://example.com/placeholder.jpg",
			},
			expectError: false,
		},
		{
			name:        "Error - missing WhatsApp number",
			envVars:     map[string]string{},
			expectError: true,
			errorMsg:    "WhatsApp number is required",
		},
		{
			name: "Error - remote source without CMS credentials",
			envVars: map[string]string{
				"CATALOG_SOURCE":  "remote",
				"WHATSAPP_NUMBER": "5215512345678",
			},
			expectError: true,
			errorMsg:    "CMS space ID is required",
		},
		{
			name: "Error - remote source without access token",
			envVars: map[string]string{
				"CATALOG_SOURCE":  "remote",
				"CMS_SPACE_ID":    "space123",
				"WHATSAPP_NUMBER": "5215512345678",
			},
			expectError: true,
			errorMsg:    "CMS access token is required",
		},
		{
			name: "Error - invalid server port",
			envVars: map[string]string{
				"SERVER_PORT":     "99999",
				"WHATSAPP_NUMBER": "5215512345678",
			},
			expectError: true,
			errorMsg:    "invalid server port",
		},
		{
			name: "Error - invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL":       "invalid",
				"WHATSAPP_NUMBER": "5215512345678",
			},
			expectError: true,
			errorMsg:    "invalid log level",
		},
		{
			name: "Error - invalid catalog source",
			envVars: map[string]string{
				"CATALOG_SOURCE":  "database",
				"WHATSAPP_NUMBER": "5215512345678",
			},
			expectError: true,
			errorMsg:    "invalid catalog source",
		},
		{
			name: "Error - S3 enabled without bucket",
			envVars: map[string]string{
				"S3_ENABLED":      "true",
				"WHATSAPP_NUMBER": "5215512345678",
			},
			expectError: true,
			errorMsg:    "S3 bucket is required",
		},
		{
			name: "Error - image quality out of range",
			envVars: map[string]string{
				"IMAGE_QUALITY":   "150",
				"WHATSAPP_NUMBER": "5215512345678",
			},
			expectError: true,
			errorMsg:    "image quality",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := Load()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
			}

			// Clean up
			os.Clearenv()
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("WHATSAPP_NUMBER", "5215512345678")
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "master", cfg.CMS.Environment)
	assert.Equal(t, 800, cfg.Image.Width)
	assert.Equal(t, 800, cfg.Image.Height)
	assert.Equal(t, 80, cfg.Image.Quality)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)

	// Without CMS credentials the static catalogue is selected.
	assert.Equal(t, SourceStatic, cfg.Catalog.Source)
}

func TestLoad_DefaultSourceWithCredentials(t *testing.T) {
	os.Clearenv()
	os.Setenv("WHATSAPP_NUMBER", "5215512345678")
	os.Setenv("CMS_SPACE_ID", "space123")
	os.Setenv("CMS_ACCESS_TOKEN", "token123")
	defer os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, cfg.Catalog.Source)
}

func TestCMSConfig_UsesPreview(t *testing.T) {
	cfg := CMSConfig{SpaceID: "s", AccessToken: "a"}
	assert.False(t, cfg.UsesPreview())

	cfg.PreviewToken = "p"
	assert.True(t, cfg.UsesPreview())
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 9090}
	assert.Equal(t, "127.0.0.1:9090", cfg.Address())
}
