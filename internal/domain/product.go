package domain

import (
	"fmt"
	"time"
)

// DefaultCurrencyUnit is applied when a SKU price omits its currency.
const DefaultCurrencyUnit = "USD"

// SkuPropertyOption is one enumerated value of a SKU property
// (e.g. "Small" for the "Size" property).
type SkuPropertyOption struct {
	OptionID string `json:"id" bson:"optionId"`
	Name     string `json:"name" bson:"name"`
	Slug     string `json:"slug" bson:"slug"`
}

// SkuProperty is a variant axis of a product with its enumerated options.
type SkuProperty struct {
	PropertyID string              `json:"id" bson:"propertyId"`
	Name       string              `json:"name" bson:"name"`
	Enum       []SkuPropertyOption `json:"enum" bson:"enum"`
}

// Price is a monetary value with its currency unit.
type Price struct {
	Value float64 `json:"value" bson:"value"`
	Unit  string  `json:"unit" bson:"unit"`
}

// SkuFieldData carries the per-SKU payload. SkuValues maps property ids to
// the selected option ids and is schema-less by design.
type SkuFieldData struct {
	Name      string            `json:"name" bson:"name"`
	Slug      string            `json:"slug" bson:"slug"`
	Price     Price             `json:"price" bson:"price"`
	SkuValues map[string]string `json:"sku-values" bson:"skuValues"`
	Quantity  int               `json:"quantity" bson:"quantity"`
}

// Sku is one stock-keeping unit embedded in a product.
type Sku struct {
	SkuID         string       `json:"skuId" bson:"skuId"`
	CMSLocaleID   string       `json:"cmsLocaleId" bson:"cmsLocaleId"`
	LastPublished *time.Time   `json:"lastPublished" bson:"lastPublished"`
	LastUpdated   *time.Time   `json:"lastUpdated" bson:"lastUpdated"`
	CreatedOn     *time.Time   `json:"createdOn" bson:"createdOn"`
	FieldData     SkuFieldData `json:"fieldData" bson:"fieldData"`
}

// ProductFieldData carries the typed portion of a product payload.
type ProductFieldData struct {
	Name          string        `json:"name" bson:"name"`
	Slug          string        `json:"slug" bson:"slug"`
	Description   string        `json:"description" bson:"description"`
	Shippable     bool          `json:"shippable" bson:"shippable"`
	SkuProperties []SkuProperty `json:"sku-properties" bson:"skuProperties"`
	TaxCategory   string        `json:"tax-category" bson:"taxCategory"`
	DefaultSku    string        `json:"default-sku" bson:"defaultSku"`
	ECProductType string        `json:"ec-product-type" bson:"ecProductType"`
}

// Product mirrors one e-commerce product with its embedded SKUs.
// Identity key: (productId, siteId).
type Product struct {
	ID            string           `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string           `json:"userId" bson:"userId"`
	SiteID        string           `json:"siteId" bson:"siteId"`
	ProductID     string           `json:"productId" bson:"productId"`
	CMSLocaleID   string           `json:"cmsLocaleId" bson:"cmsLocaleId"`
	LastPublished *time.Time       `json:"lastPublished" bson:"lastPublished"`
	LastUpdated   *time.Time       `json:"lastUpdated" bson:"lastUpdated"`
	CreatedOn     *time.Time       `json:"createdOn" bson:"createdOn"`
	IsArchived    bool             `json:"isArchived" bson:"isArchived"`
	IsDraft       bool             `json:"isDraft" bson:"isDraft"`
	FieldData     ProductFieldData `json:"fieldData" bson:"fieldData"`
	Skus          []Sku            `json:"skus" bson:"skus"`
	CreatedAt     time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Validate enforces SKU id uniqueness within the product. It runs before
// persistence so a bad payload never reaches the database.
func (p *Product) Validate() error {
	seen := make(map[string]struct{}, len(p.Skus))
	for _, sku := range p.Skus {
		if _, dup := seen[sku.SkuID]; dup {
			return NewValidationError(fmt.Sprintf("duplicate SKU id %s within product %s", sku.SkuID, p.ProductID))
		}
		seen[sku.SkuID] = struct{}{}
	}
	return nil
}
