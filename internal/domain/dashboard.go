package domain

import "time"

// Dashboard connection statuses.
const (
	StatusConnected    = "Connected"
	StatusNotConnected = "Not Connected"
)

// SiteSummary is one row of the dashboard view: per-site counts computed
// from persisted data.
type SiteSummary struct {
	WebsiteName      string     `json:"websiteName"`
	LastSync         *time.Time `json:"lastSync"`
	Status           string     `json:"status"`
	TotalCollections int64      `json:"totalCollections"`
	TotalItems       int64      `json:"totalItems"`
	TotalProducts    int64      `json:"totalProducts"`
}

// NoSiteSummary is the placeholder row returned when a user has no
// connected sites.
func NoSiteSummary() SiteSummary {
	return SiteSummary{
		WebsiteName: "No site connected",
		Status:      StatusNotConnected,
	}
}
