package domain

import "time"

// Locale is a single locale configuration entry on a Webflow site.
type Locale struct {
	LocaleID       string `json:"id" bson:"localeId"`
	CMSLocaleID    string `json:"cmsLocaleId" bson:"cmsLocaleId"`
	Enabled        bool   `json:"enabled" bson:"enabled"`
	DisplayName    string `json:"displayName" bson:"displayName"`
	DisplayImageID string `json:"displayImageId" bson:"displayImageId"`
	Redirect       bool   `json:"redirect" bson:"redirect"`
	Subdirectory   string `json:"subdirectory" bson:"subdirectory"`
	Tag            string `json:"tag" bson:"tag"`
}

// SiteLocales holds the primary locale plus any secondary locales.
type SiteLocales struct {
	Primary   Locale   `json:"primary" bson:"primary"`
	Secondary []Locale `json:"secondary" bson:"secondary"`
}

// Site mirrors one Webflow site owned by a user. Identity key:
// (userId, webflowSiteId). Sites are never deleted by the sync layer;
// absence upstream is not treated as deletion.
type Site struct {
	ID                    string      `json:"id,omitempty" bson:"_id,omitempty"`
	UserID                string      `json:"userId" bson:"userId"`
	WebflowSiteID         string      `json:"webflowSiteId" bson:"webflowSiteId"`
	DisplayName           string      `json:"displayName" bson:"displayName"`
	ShortName             string      `json:"shortName" bson:"shortName"`
	PreviewURL            string      `json:"previewUrl" bson:"previewUrl"`
	TimeZone              string      `json:"timeZone" bson:"timeZone"`
	CreatedOn             *time.Time  `json:"createdOn" bson:"createdOn"`
	LastUpdated           *time.Time  `json:"lastUpdated" bson:"lastUpdated"`
	LastPublished         *time.Time  `json:"lastPublished" bson:"lastPublished"`
	ParentFolderID        string      `json:"parentFolderId" bson:"parentFolderId"`
	CustomDomains         []string    `json:"customDomains" bson:"customDomains"`
	Locales               SiteLocales `json:"locales" bson:"locales"`
	DataCollectionEnabled bool        `json:"dataCollectionEnabled" bson:"dataCollectionEnabled"`
	DataCollectionType    string      `json:"dataCollectionType" bson:"dataCollectionType"`
	CreatedAt             time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time   `json:"updatedAt" bson:"updatedAt"`
}
