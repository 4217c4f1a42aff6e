package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/infrastructure/webflow"
)

// fakeWebflowClient serves canned payloads and counts calls so tests can
// assert which upstream endpoints a service touched.
type fakeWebflowClient struct {
	mu sync.Mutex

	sites       []webflow.Site
	collections map[string][]webflow.Collection
	items       map[string][]webflow.Item
	products    map[string][]webflow.ProductBundle
	pages       map[string][]webflow.Page
	ecommerce   map[string]bool

	itemsErr map[string]error

	calls map[string]int
}

func newFakeWebflowClient() *fakeWebflowClient {
	return &fakeWebflowClient{
		collections: map[string][]webflow.Collection{},
		items:       map[string][]webflow.Item{},
		products:    map[string][]webflow.ProductBundle{},
		pages:       map[string][]webflow.Page{},
		ecommerce:   map[string]bool{},
		itemsErr:    map[string]error{},
		calls:       map[string]int{},
	}
}

func (f *fakeWebflowClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[call]++
}

func (f *fakeWebflowClient) callCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

func (f *fakeWebflowClient) ListSites(_ context.Context, _ string) ([]webflow.Site, error) {
	f.record("sites")
	return f.sites, nil
}

func (f *fakeWebflowClient) ListCollections(_ context.Context, siteID string, _ string) ([]webflow.Collection, error) {
	f.record("collections:" + siteID)
	return f.collections[siteID], nil
}

func (f *fakeWebflowClient) ListItems(_ context.Context, collectionID string, _ string) ([]webflow.Item, error) {
	f.record("items:" + collectionID)
	if err := f.itemsErr[collectionID]; err != nil {
		return nil, err
	}
	return f.items[collectionID], nil
}

func (f *fakeWebflowClient) ListProducts(_ context.Context, siteID string, _ string) ([]webflow.ProductBundle, error) {
	f.record("products:" + siteID)
	return f.products[siteID], nil
}

func (f *fakeWebflowClient) ListPages(_ context.Context, siteID string, _ string) ([]webflow.Page, error) {
	f.record("pages:" + siteID)
	return f.pages[siteID], nil
}

func (f *fakeWebflowClient) EcommerceEnabled(_ context.Context, siteID string, _ string) (bool, error) {
	f.record("ecommerce:" + siteID)
	return f.ecommerce[siteID], nil
}

// memSiteRepository keys sites by webflowSiteId+userId, mirroring the
// persistent upsert identity.
type memSiteRepository struct {
	mu    sync.Mutex
	sites map[string]*domain.Site
}

func newMemSiteRepository() *memSiteRepository {
	return &memSiteRepository{sites: map[string]*domain.Site{}}
}

func (r *memSiteRepository) Upsert(_ context.Context, site *domain.Site) (*domain.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := site.WebflowSiteID + "/" + site.UserID
	copied := *site
	if existing, ok := r.sites[key]; ok {
		copied.ID = existing.ID
		copied.CreatedAt = existing.CreatedAt
	} else {
		copied.ID = fmt.Sprintf("site-doc-%d", len(r.sites)+1)
		copied.CreatedAt = time.Now().UTC()
	}
	copied.UpdatedAt = time.Now().UTC()
	r.sites[key] = &copied
	return &copied, nil
}

func (r *memSiteRepository) ListByUser(_ context.Context, userID string) ([]*domain.Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Site
	for _, site := range r.sites {
		if site.UserID == userID {
			copied := *site
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memSiteRepository) Count(_ context.Context, filter map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, site := range r.sites {
		if matches(filter, map[string]any{"userId": site.UserID, "webflowSiteId": site.WebflowSiteID}) {
			count++
		}
	}
	return count, nil
}

type memCollectionRepository struct {
	mu          sync.Mutex
	collections map[string]*domain.Collection
	upserts     int
}

func newMemCollectionRepository() *memCollectionRepository {
	return &memCollectionRepository{collections: map[string]*domain.Collection{}}
}

func (r *memCollectionRepository) Upsert(_ context.Context, collection *domain.Collection) (*domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	copied := *collection
	r.collections[collection.WebflowCollectionID] = &copied
	return &copied, nil
}

func (r *memCollectionRepository) ListBySite(_ context.Context, siteID string) ([]*domain.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Collection
	for _, collection := range r.collections {
		if collection.WebflowSiteID == siteID {
			copied := *collection
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memCollectionRepository) Count(_ context.Context, filter map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, collection := range r.collections {
		if matches(filter, map[string]any{"userId": collection.UserID, "webflowSiteId": collection.WebflowSiteID}) {
			count++
		}
	}
	return count, nil
}

type memItemRepository struct {
	mu    sync.Mutex
	items map[string]*domain.Item
}

func newMemItemRepository() *memItemRepository {
	return &memItemRepository{items: map[string]*domain.Item{}}
}

func (r *memItemRepository) Upsert(_ context.Context, item *domain.Item) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ItemID+"/"+item.CollectionID] = &copied
	return &copied, nil
}

func (r *memItemRepository) Count(_ context.Context, filter map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, item := range r.items {
		if matches(filter, map[string]any{"userId": item.UserID, "siteId": item.SiteID, "collectionId": item.CollectionID}) {
			count++
		}
	}
	return count, nil
}

type memProductRepository struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newMemProductRepository() *memProductRepository {
	return &memProductRepository{products: map[string]*domain.Product{}}
}

func (r *memProductRepository) Upsert(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *product
	r.products[product.ProductID+"/"+product.SiteID] = &copied
	return &copied, nil
}

func (r *memProductRepository) Count(_ context.Context, filter map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, product := range r.products {
		if matches(filter, map[string]any{"userId": product.UserID, "siteId": product.SiteID}) {
			count++
		}
	}
	return count, nil
}

func (r *memProductRepository) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.products)
}

type memPageRepository struct {
	mu    sync.Mutex
	pages map[string]*domain.Page
}

func newMemPageRepository() *memPageRepository {
	return &memPageRepository{pages: map[string]*domain.Page{}}
}

func (r *memPageRepository) Upsert(_ context.Context, page *domain.Page) (*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *page
	r.pages[page.WebflowPageID+"/"+page.WebflowSiteID] = &copied
	return &copied, nil
}

func (r *memPageRepository) Count(_ context.Context, filter map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, page := range r.pages {
		if matches(filter, map[string]any{"userId": page.UserID, "siteId": page.WebflowSiteID}) {
			count++
		}
	}
	return count, nil
}

type memUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: map[string]*domain.User{}}
}

func (r *memUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.NewValidationError("email is already registered")
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.NewNotFoundError("user not found")
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepository) SetWebflowAccessToken(_ context.Context, userID string, encryptedToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.NewNotFoundError("user not found")
	}
	user.WebflowAccessToken = encryptedToken
	return nil
}

func (r *memUserRepository) MarkResourceFetched(_ context.Context, userID string, kind domain.ResourceKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.NewNotFoundError("user not found")
	}
	if user.WebflowDataFetchedAndSaved == nil {
		user.WebflowDataFetchedAndSaved = domain.SyncState{}
	}
	user.WebflowDataFetchedAndSaved[kind] = true
	return nil
}

// plainEncryption passes values through with a marker prefix so tests can
// tell encrypted from plaintext without real crypto.
type plainEncryption struct{}

func (plainEncryption) Encrypt(plaintext string) (string, error) { return "enc:" + plaintext, nil }

func (plainEncryption) Decrypt(ciphertext string) (string, error) {
	if len(ciphertext) < 4 || ciphertext[:4] != "enc:" {
		return "", domain.NewValidationError("malformed ciphertext")
	}
	return ciphertext[4:], nil
}

// matches checks every filter field against the entity's known fields.
func matches(filter map[string]any, fields map[string]any) bool {
	for key, want := range filter {
		got, ok := fields[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}
