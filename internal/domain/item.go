package domain

import "time"

// ItemStatus is derived from the upstream draft flag at sync time.
type ItemStatus string

const (
	ItemStatusStaged ItemStatus = "staged"
	ItemStatusLive   ItemStatus = "live"
)

// Item mirrors one CMS item. FieldData is schema-less on purpose: collection
// schemas are user-defined upstream, so the payload is kept as an opaque map.
// Identity key: (itemId, collectionId).
type Item struct {
	ID            string         `json:"id,omitempty" bson:"_id,omitempty"`
	ItemID        string         `json:"itemId" bson:"itemId"`
	CollectionID  string         `json:"collectionId" bson:"collectionId"`
	SiteID        string         `json:"siteId" bson:"siteId"`
	UserID        string         `json:"userId" bson:"userId"`
	FieldData     map[string]any `json:"fieldData" bson:"fieldData"`
	CMSLocaleID   string         `json:"cmsLocaleId" bson:"cmsLocaleId"`
	LastPublished *time.Time     `json:"lastPublished" bson:"lastPublished"`
	LastUpdated   *time.Time     `json:"lastUpdated" bson:"lastUpdated"`
	CreatedOn     *time.Time     `json:"createdOn" bson:"createdOn"`
	IsArchived    bool           `json:"isArchived" bson:"isArchived"`
	IsDraft       bool           `json:"isDraft" bson:"isDraft"`
	Status        ItemStatus     `json:"status" bson:"status"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}
