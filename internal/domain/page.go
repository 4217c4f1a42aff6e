package domain

import "time"

// PageSEO holds the nested SEO sub-fields of a page. Both fields are
// optional upstream.
type PageSEO struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

// Page mirrors one static page of a site. Identity key:
// (webflowPageId, webflowSiteId).
type Page struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty"`
	WebflowPageID string     `json:"webflowPageId" bson:"webflowPageId"`
	WebflowSiteID string     `json:"webflowSiteId" bson:"webflowSiteId"`
	UserID        string     `json:"userId" bson:"userId"`
	Title         string     `json:"title" bson:"title"`
	Slug          string     `json:"slug" bson:"slug"`
	CreatedOn     *time.Time `json:"createdOn" bson:"createdOn"`
	LastUpdated   *time.Time `json:"lastUpdated" bson:"lastUpdated"`
	Archived      bool       `json:"archived" bson:"archived"`
	Draft         bool       `json:"draft" bson:"draft"`
	CanBranch     bool       `json:"canBranch" bson:"canBranch"`
	IsBranch      bool       `json:"isBranch" bson:"isBranch"`
	IsMembersOnly bool       `json:"isMembersOnly" bson:"isMembersOnly"`
	SEO           PageSEO    `json:"seo" bson:"seo"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}
