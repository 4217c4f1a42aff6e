package ports

import (
	"context"

	"webflow-mirror-layer/internal/domain"
)

// Every repository upserts by the entity's identity key and returns the
// persisted document. Count takes an arbitrary field filter; an empty filter
// is a validation error.

// SiteRepository persists mirrored sites.
type SiteRepository interface {
	Upsert(ctx context.Context, site *domain.Site) (*domain.Site, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Site, error)
	Count(ctx context.Context, filter map[string]any) (int64, error)
}

// CollectionRepository persists mirrored CMS collections. ListBySite feeds
// the item sync fan-out from local state.
type CollectionRepository interface {
	Upsert(ctx context.Context, collection *domain.Collection) (*domain.Collection, error)
	ListBySite(ctx context.Context, siteID string) ([]*domain.Collection, error)
	Count(ctx context.Context, filter map[string]any) (int64, error)
}

// ItemRepository persists mirrored CMS items.
type ItemRepository interface {
	Upsert(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Count(ctx context.Context, filter map[string]any) (int64, error)
}

// ProductRepository persists mirrored e-commerce products.
type ProductRepository interface {
	Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Count(ctx context.Context, filter map[string]any) (int64, error)
}

// PageRepository persists mirrored static pages.
type PageRepository interface {
	Upsert(ctx context.Context, page *domain.Page) (*domain.Page, error)
	Count(ctx context.Context, filter map[string]any) (int64, error)
}

// UserRepository persists account records. Lookups return (nil, nil) when
// no user matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetWebflowAccessToken(ctx context.Context, userID string, encryptedToken string) error
	MarkResourceFetched(ctx context.Context, userID string, kind domain.ResourceKind) error
}
