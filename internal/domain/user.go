package domain

import "time"

// ResourceKind identifies one synchronized Webflow resource kind.
type ResourceKind string

const (
	ResourceSites       ResourceKind = "sites"
	ResourceCollections ResourceKind = "collections"
	ResourceItems       ResourceKind = "items"
	ResourcePages       ResourceKind = "pages"
	ResourceProducts    ResourceKind = "products"
)

// ResourceKinds lists every kind tracked by the sync-state flags.
func ResourceKinds() []ResourceKind {
	return []ResourceKind{
		ResourceSites,
		ResourceCollections,
		ResourceItems,
		ResourcePages,
		ResourceProducts,
	}
}

// SyncState records which resource kinds have completed a full sync for a
// user. The dashboard uses it to decide full-sync vs count-only.
type SyncState map[ResourceKind]bool

// AllFetched reports whether every tracked kind has been synced.
func (s SyncState) AllFetched() bool {
	for _, kind := range ResourceKinds() {
		if !s[kind] {
			return false
		}
	}
	return true
}

// User is the account record. WebflowAccessToken is stored encrypted at
// rest; Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID                         string     `json:"id,omitempty" bson:"_id,omitempty"`
	UserName                   string     `json:"userName" bson:"userName"`
	Email                      string     `json:"email" bson:"email"`
	Phone                      string     `json:"phone" bson:"phone"`
	Password                   string     `json:"-" bson:"password"`
	EmailVerified              bool       `json:"emailVerified" bson:"emailVerified"`
	VerificationCode           string     `json:"-" bson:"verificationCode,omitempty"`
	VerificationExpiresAt      *time.Time `json:"-" bson:"verificationExpiresAt,omitempty"`
	PasswordResetCode          string     `json:"-" bson:"passwordResetCode,omitempty"`
	PasswordResetExpiresAt     *time.Time `json:"-" bson:"passwordResetExpiresAt,omitempty"`
	WebflowAccessToken         string     `json:"-" bson:"webflowAccessToken,omitempty"`
	WebflowDataFetchedAndSaved SyncState  `json:"webflowDataFetchedAndSaved" bson:"webflowDataFetchedAndSaved"`
	CreatedAt                  time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt                  time.Time  `json:"updatedAt" bson:"updatedAt"`
}
