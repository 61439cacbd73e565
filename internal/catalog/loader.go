package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"lumident/internal/model"

	"github.com/rs/zerolog"
)

// File is the on-disk shape of a static catalogue.
type File struct {
	Products   []model.Product  `json:"products"`
	Categories []model.Category `json:"categories"`
}

// Loader reads a static catalogue from a backing store.
type Loader interface {
	// Load reads the catalogue file at the given path or key.
	Load(ctx context.Context, path string) (*File, error)
}

// fileLoader implements Loader for local JSON catalogue files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads and decodes a catalogue JSON file.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*File, error) {
	l.logger.Info().Str("file", filePath).Msg("loading catalogue file")

	data, err := os.ReadFile(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read catalogue file")
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", filePath, err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to parse catalogue file")
		return nil, fmt.Errorf("failed to parse catalogue file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("products", len(file.Products)).
		Int("categories", len(file.Categories)).
		Msg("catalogue file loaded successfully")

	return &file, nil
}
