package domain

import "time"

// Collection mirrors one CMS collection of a site. Webflow collection ids
// are globally unique, so the external id alone is the identity key.
type Collection struct {
	ID                  string     `json:"id,omitempty" bson:"_id,omitempty"`
	UserID              string     `json:"userId" bson:"userId"`
	WebflowSiteID       string     `json:"webflowSiteId" bson:"webflowSiteId"`
	WebflowCollectionID string     `json:"webflowCollectionId" bson:"webflowCollectionId"`
	DisplayName         string     `json:"displayName" bson:"displayName"`
	SingularName        string     `json:"singularName" bson:"singularName"`
	Slug                string     `json:"slug" bson:"slug"`
	CreatedOn           *time.Time `json:"createdOn" bson:"createdOn"`
	LastUpdated         *time.Time `json:"lastUpdated" bson:"lastUpdated"`
	LiveItems           []string   `json:"liveItems" bson:"liveItems"`
	StagedItems         []string   `json:"stagedItems" bson:"stagedItems"`
	CreatedAt           time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt" bson:"updatedAt"`
}
