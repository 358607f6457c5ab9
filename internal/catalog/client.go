package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flowershop/internal/model"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// Query parameters for the two collections.
const (
	productsEndpoint   = "catalog"
	productsLimit      = "100"
	productsOrders     = "order,-publishedAt"
	categoriesEndpoint = "categories"
	categoriesLimit    = "50"
	categoriesOrders   = "order"

	apiKeyHeader = "X-MICROCMS-API-KEY"

	// maxBodyBytes bounds a single list response.
	maxBodyBytes = 8 << 20
)

// Source fetches the catalog collections from the content API.
type Source interface {
	// Products fetches and normalizes the product list.
	Products(ctx context.Context) ([]model.Product, error)

	// Categories fetches and normalizes the category list.
	Categories(ctx context.Context) ([]model.Category, error)
}

// Client is a read-only client for a microCMS list API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a content API client rooted at baseURL
// (e.g. https://hanaya.microcms.io/api/v1).
func NewClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "cms-client").Logger(),
	}
}

// Products fetches the product list.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	query := url.Values{}
	query.Set("limit", productsLimit)
	query.Set("orders", productsOrders)
	query.Set("depth", "1")

	contents, err := c.list(ctx, productsEndpoint, query)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(contents))
	for _, raw := range contents {
		products = append(products, NormalizeProduct(raw))
	}

	return products, nil
}

// Categories fetches the category list.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	query := url.Values{}
	query.Set("limit", categoriesLimit)
	query.Set("orders", categoriesOrders)

	contents, err := c.list(ctx, categoriesEndpoint, query)
	if err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(contents))
	for _, raw := range contents {
		if cat, ok := NormalizeCategory(raw); ok {
			categories = append(categories, cat)
		}
	}

	return categories, nil
}

// list requests one collection and returns the records in "contents".
func (c *Client) list(ctx context.Context, endpoint string, query url.Values) ([]gjson.Result, error) {
	target := c.baseURL + "/" + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("content API request failed")
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("content API returned an error")
		return nil, fmt.Errorf("content API %s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("content API %s returned invalid JSON", endpoint)
	}

	contents := gjson.GetBytes(body, "contents").Array()

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("count", len(contents)).
		Int64("total_count", gjson.GetBytes(body, "totalCount").Int()).
		Dur("duration", time.Since(start)).
		Msg("content API list fetched")

	return contents, nil
}
