package webflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"webflow-mirror-layer/internal/domain"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://api.webflow.com/v2"
	acceptVersion  = "2.0.0"

	// ecommerceNotInitialized is the distinguishing fragment of the 409
	// body returned when a site has no e-commerce configured.
	ecommerceNotInitialized = "Ecommerce is not yet initialized"
)

// ClientOptions configures the Webflow API client. Zero values fall back to
// production defaults; tests inject BaseURL and HTTPClient.
type ClientOptions struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	// ObserveRequest, when set, receives the duration of every upstream
	// call keyed by resource kind.
	ObserveRequest func(resource string, duration time.Duration)
}

// Client is a thin typed client over the Webflow v2 REST API. All calls are
// read-only GETs authenticated with the caller's bearer token.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	observeRequest func(resource string, duration time.Duration)
	logger         zerolog.Logger
}

// NewClient creates a Webflow API client.
func NewClient(opts ClientOptions, logger zerolog.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		observeRequest: opts.ObserveRequest,
		logger:         logger,
	}
}

// ListSites fetches all sites visible to the access token.
func (c *Client) ListSites(ctx context.Context, accessToken string) ([]Site, error) {
	var out sitesResponse
	if err := c.get(ctx, "/sites", accessToken, "sites", &out); err != nil {
		return nil, err
	}
	return out.Sites, nil
}

// ListCollections fetches the CMS collections of one site.
func (c *Client) ListCollections(ctx context.Context, siteID string, accessToken string) ([]Collection, error) {
	var out collectionsResponse
	path := fmt.Sprintf("/sites/%s/collections", siteID)
	if err := c.get(ctx, path, accessToken, "collections", &out); err != nil {
		return nil, err
	}
	return out.Collections, nil
}

// ListItems fetches the items of one collection.
func (c *Client) ListItems(ctx context.Context, collectionID string, accessToken string) ([]Item, error) {
	var out itemsResponse
	path := fmt.Sprintf("/collections/%s/items", collectionID)
	if err := c.get(ctx, path, accessToken, "items", &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ListProducts fetches the e-commerce products of one site. Callers should
// check EcommerceEnabled first; a 409 here propagates as an upstream error.
func (c *Client) ListProducts(ctx context.Context, siteID string, accessToken string) ([]ProductBundle, error) {
	var out productsResponse
	path := fmt.Sprintf("/sites/%s/products", siteID)
	if err := c.get(ctx, path, accessToken, "products", &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ListPages fetches the static pages of one site.
func (c *Client) ListPages(ctx context.Context, siteID string, accessToken string) ([]Page, error) {
	var out pagesResponse
	path := fmt.Sprintf("/sites/%s/pages", siteID)
	if err := c.get(ctx, path, accessToken, "pages", &out); err != nil {
		return nil, err
	}
	return out.Pages, nil
}

// EcommerceEnabled probes the products endpoint. A 409 carrying the
// "Ecommerce is not yet initialized" message means e-commerce is disabled on
// the site; that is a boolean result, not an error. Any other failure
// propagates as an upstream error.
func (c *Client) EcommerceEnabled(ctx context.Context, siteID string, accessToken string) (bool, error) {
	path := fmt.Sprintf("/sites/%s/products", siteID)
	var out productsResponse
	err := c.get(ctx, path, accessToken, "products", &out)
	if err == nil {
		return true, nil
	}
	var domainErr *domain.Error
	if errors.As(err, &domainErr) &&
		domainErr.StatusCode == http.StatusConflict &&
		strings.Contains(domainErr.Message, ecommerceNotInitialized) {
		return false, nil
	}
	return false, err
}

func (c *Client) get(ctx context.Context, path string, accessToken string, resource string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("accept-version", acceptVersion)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.observeRequest != nil {
		c.observeRequest(resource, time.Since(start))
	}
	if err != nil {
		return domain.NewUpstreamError(0, fmt.Sprintf("webflow request for %s failed", resource), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewUpstreamError(0, fmt.Sprintf("failed to read webflow response for %s", resource), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := upstreamMessage(body)
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("resource", resource).
			Str("message", message).
			Msg("Webflow API returned an error")
		return domain.NewUpstreamError(resp.StatusCode, message, nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return domain.NewUpstreamError(0, fmt.Sprintf("failed to decode webflow response for %s", resource), err)
	}
	return nil
}

// upstreamMessage extracts the message field of a Webflow error body,
// falling back to the raw body so the upstream detail is never lost.
func upstreamMessage(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "webflow request failed"
	}
	return trimmed
}
