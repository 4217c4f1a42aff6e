package ports

import (
	"context"

	"webflow-mirror-layer/internal/infrastructure/webflow"
)

// WebflowClient defines the read-only operations consumed from the Webflow
// v2 API, one method per resource kind.
type WebflowClient interface {
	ListSites(ctx context.Context, accessToken string) ([]webflow.Site, error)
	ListCollections(ctx context.Context, siteID string, accessToken string) ([]webflow.Collection, error)
	ListItems(ctx context.Context, collectionID string, accessToken string) ([]webflow.Item, error)
	ListProducts(ctx context.Context, siteID string, accessToken string) ([]webflow.ProductBundle, error)
	ListPages(ctx context.Context, siteID string, accessToken string) ([]webflow.Page, error)

	// EcommerceEnabled reports whether a site has e-commerce configured.
	// A disabled site is a boolean result, never an error.
	EcommerceEnabled(ctx context.Context, siteID string, accessToken string) (bool, error)
}
