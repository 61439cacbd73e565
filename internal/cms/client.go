package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"lumident/internal/config"
	"lumident/internal/model"

	"github.com/rs/zerolog"
)

// Delivery API hosts. The preview host serves unpublished content and is
// selected once, at construction, when a preview token is configured.
const (
	deliveryHost = "https://cdn.contentful.com"
	previewHost  = "https://preview.contentful.com"
)

const defaultTimeout = 10 * time.Second

// Client is a thin wrapper over the CMS delivery HTTP API. One client is
// constructed per process and reused across all calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     zerolog.Logger
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
	defaultErr    error
)

// Default returns the process-wide client, constructing it on first call.
// Construction errors are sticky: later calls return the same error.
func Default(cfg config.CMSConfig, logger zerolog.Logger) (*Client, error) {
	defaultOnce.Do(func() {
		defaultClient, defaultErr = New(cfg, logger)
	})
	return defaultClient, defaultErr
}

// New creates a CMS client. SpaceID and AccessToken are required; their
// absence is a configuration error, never retried.
func New(cfg config.CMSConfig, logger zerolog.Logger) (*Client, error) {
	if cfg.SpaceID == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingConfig, "CMS space ID is not configured")
	}
	if cfg.AccessToken == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingConfig, "CMS access token is not configured")
	}

	host := deliveryHost
	token := cfg.AccessToken
	if cfg.UsesPreview() {
		host = previewHost
		token = cfg.PreviewToken
	}
	if cfg.BaseURL != "" {
		host = cfg.BaseURL
	}

	environment := cfg.Environment
	if environment == "" {
		environment = "master"
	}

	logger = logger.With().Str("component", "cms-client").Logger()
	logger.Info().
		Str("space_id", cfg.SpaceID).
		Bool("preview", cfg.UsesPreview()).
		Msg("CMS client initialised")

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    fmt.Sprintf("%s/spaces/%s/environments/%s", host, cfg.SpaceID, environment),
		token:      token,
		logger:     logger,
	}, nil
}

// Query describes one entries request: a content-type discriminator,
// optional field-equality filters, an optional free-text term, a result
// limit, a reference-resolution depth, and an ordering specifier.
type Query struct {
	ContentType string
	Fields      map[string]string // field-equality filters, keyed without the "fields." prefix
	Query       string            // free-text search term
	Limit       int
	Include     int // reference resolution depth
	Order       string
}

// Entries fetches one page of entries for the query.
func (c *Client) Entries(ctx context.Context, q Query) (*EntryCollection, error) {
	params := url.Values{}
	if q.ContentType != "" {
		params.Set("content_type", q.ContentType)
	}
	for field, value := range q.Fields {
		params.Set("fields."+field, value)
	}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	params.Set("limit", strconv.Itoa(limit))
	include := q.Include
	if include <= 0 {
		include = 2
	}
	params.Set("include", strconv.Itoa(include))
	if q.Order != "" {
		params.Set("order", q.Order)
	}

	var collection EntryCollection
	if err := c.get(ctx, "/entries?"+params.Encode(), &collection); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("content_type", q.ContentType).
		Int("total", collection.Total).
		Int("items", len(collection.Items)).
		Msg("fetched entries")

	return &collection, nil
}

// Entry fetches a single entry by its system identifier.
func (c *Client) Entry(ctx context.Context, id string) (*Entry, error) {
	var entry Entry
	if err := c.get(ctx, "/entries/"+url.PathEscape(id), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// get performs one authorised GET and decodes the response. Non-2xx
// responses become a *model.RemoteError carrying the status code.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build CMS request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("CMS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("CMS request returned error status")
		return &model.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode CMS response: %w", err)
	}
	return nil
}
