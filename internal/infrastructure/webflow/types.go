package webflow

import "time"

// Wire shapes of the Webflow v2 REST API. These are the upstream payloads;
// the application layer maps them into the internal domain shapes.

// CustomDomain is one custom domain attached to a site.
type CustomDomain struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Locale is a locale entry inside a site's locale configuration.
type Locale struct {
	ID             string `json:"id"`
	CMSLocaleID    string `json:"cmsLocaleId"`
	Enabled        bool   `json:"enabled"`
	DisplayName    string `json:"displayName"`
	DisplayImageID string `json:"displayImageId"`
	Redirect       bool   `json:"redirect"`
	Subdirectory   string `json:"subdirectory"`
	Tag            string `json:"tag"`
}

// SiteLocales groups the primary and secondary locales of a site.
type SiteLocales struct {
	Primary   Locale   `json:"primary"`
	Secondary []Locale `json:"secondary"`
}

// Site is one entry of GET /sites.
type Site struct {
	ID                    string         `json:"id"`
	DisplayName           string         `json:"displayName"`
	ShortName             string         `json:"shortName"`
	PreviewURL            string         `json:"previewUrl"`
	TimeZone              string         `json:"timeZone"`
	CreatedOn             *time.Time     `json:"createdOn"`
	LastUpdated           *time.Time     `json:"lastUpdated"`
	LastPublished         *time.Time     `json:"lastPublished"`
	ParentFolderID        string         `json:"parentFolderId"`
	CustomDomains         []CustomDomain `json:"customDomains"`
	Locales               SiteLocales    `json:"locales"`
	DataCollectionEnabled bool           `json:"dataCollectionEnabled"`
	DataCollectionType    string         `json:"dataCollectionType"`
}

// Collection is one entry of GET /sites/{siteId}/collections.
type Collection struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"displayName"`
	SingularName string     `json:"singularName"`
	Slug         string     `json:"slug"`
	CreatedOn    *time.Time `json:"createdOn"`
	LastUpdated  *time.Time `json:"lastUpdated"`
	LiveItems    []string   `json:"liveItems"`
	StagedItems  []string   `json:"stagedItems"`
}

// Item is one entry of GET /collections/{collectionId}/items. FieldData is
// opaque: its schema is defined per collection by the site owner.
type Item struct {
	ID            string         `json:"id"`
	CMSLocaleID   string         `json:"cmsLocaleId"`
	LastPublished *time.Time     `json:"lastPublished"`
	LastUpdated   *time.Time     `json:"lastUpdated"`
	CreatedOn     *time.Time     `json:"createdOn"`
	IsArchived    bool           `json:"isArchived"`
	IsDraft       bool           `json:"isDraft"`
	FieldData     map[string]any `json:"fieldData"`
}

// Page is one entry of GET /sites/{siteId}/pages. SEO may be absent.
type Page struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	CreatedOn     *time.Time `json:"createdOn"`
	LastUpdated   *time.Time `json:"lastUpdated"`
	Archived      bool       `json:"archived"`
	Draft         bool       `json:"draft"`
	CanBranch     bool       `json:"canBranch"`
	IsBranch      bool       `json:"isBranch"`
	IsMembersOnly bool       `json:"isMembersOnly"`
	SEO           *PageSEO   `json:"seo"`
}

// PageSEO is the nested SEO block of a page.
type PageSEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ProductBundle is one entry of GET /sites/{siteId}/products: the product
// document plus its SKUs, nested side by side.
type ProductBundle struct {
	Product ProductPayload `json:"product"`
	Skus    []SkuPayload   `json:"skus"`
}

// ProductPayload is the product half of a ProductBundle.
type ProductPayload struct {
	ID            string           `json:"id"`
	CMSLocaleID   string           `json:"cmsLocaleId"`
	LastPublished *time.Time       `json:"lastPublished"`
	LastUpdated   *time.Time       `json:"lastUpdated"`
	CreatedOn     *time.Time       `json:"createdOn"`
	IsArchived    bool             `json:"isArchived"`
	IsDraft       bool             `json:"isDraft"`
	FieldData     ProductFieldData `json:"fieldData"`
}

// ProductFieldData is the typed field-data block of a product.
type ProductFieldData struct {
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Shippable     bool          `json:"shippable"`
	SkuProperties []SkuProperty `json:"sku-properties"`
	TaxCategory   string        `json:"tax-category"`
	DefaultSku    string        `json:"default-sku"`
	ECProductType string        `json:"ec-product-type"`
}

// SkuProperty is one variant axis with its enumerated option values.
type SkuProperty struct {
	ID   string              `json:"id"`
	Name string              `json:"name"`
	Enum []SkuPropertyOption `json:"enum"`
}

// SkuPropertyOption is one enumerated value of a SKU property.
type SkuPropertyOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SkuPayload is one SKU of a ProductBundle.
type SkuPayload struct {
	ID            string       `json:"id"`
	CMSLocaleID   string       `json:"cmsLocaleId"`
	LastPublished *time.Time   `json:"lastPublished"`
	LastUpdated   *time.Time   `json:"lastUpdated"`
	CreatedOn     *time.Time   `json:"createdOn"`
	FieldData     SkuFieldData `json:"fieldData"`
}

// SkuFieldData is the field-data block of a SKU. Price may be absent.
type SkuFieldData struct {
	Name      string            `json:"name"`
	Slug      string            `json:"slug"`
	Price     *Price            `json:"price"`
	SkuValues map[string]string `json:"sku-values"`
	Quantity  int               `json:"quantity"`
}

// Price is a monetary value with its currency unit.
type Price struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type sitesResponse struct {
	Sites []Site `json:"sites"`
}

type collectionsResponse struct {
	Collections []Collection `json:"collections"`
}

type itemsResponse struct {
	Items []Item `json:"items"`
}

type pagesResponse struct {
	Pages []Page `json:"pages"`
}

type productsResponse struct {
	Items []ProductBundle `json:"items"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
