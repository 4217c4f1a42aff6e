package application

import (
	"context"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/infrastructure/metrics"
	"webflow-mirror-layer/internal/infrastructure/webflow"
	"webflow-mirror-layer/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SiteSyncService mirrors the sites of a Webflow account into local storage.
type SiteSyncService struct {
	client  ports.WebflowClient
	sites   ports.SiteRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewSiteSyncService creates a new site synchronizer
func NewSiteSyncService(
	client ports.WebflowClient,
	sites ports.SiteRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *SiteSyncService {
	return &SiteSyncService{
		client:  client,
		sites:   sites,
		metrics: m,
		logger:  logger,
	}
}

// FetchAndSaveSites fetches every site visible to the token and upserts them
// concurrently. An account with zero sites is a success, not an error.
func (s *SiteSyncService) FetchAndSaveSites(ctx context.Context, userID string, accessToken string) (*SyncResult, error) {
	if accessToken == "" {
		return nil, domain.NewValidationError("webflow access token is required")
	}

	sites, err := s.client.ListSites(ctx, accessToken)
	if err != nil {
		s.metrics.SyncCompleted(string(domain.ResourceSites), metrics.ResultFailure)
		return nil, err
	}

	if len(sites) == 0 {
		s.metrics.SyncCompleted(string(domain.ResourceSites), metrics.ResultSuccess)
		return &SyncResult{Success: true, Message: "user has no sites"}, nil
	}

	saved := make([]*domain.Site, len(sites))
	g, gctx := errgroup.WithContext(ctx)
	for i, site := range sites {
		i, site := i, site
		g.Go(func() error {
			persisted, err := s.sites.Upsert(gctx, mapSite(userID, site))
			if err != nil {
				return err
			}
			saved[i] = persisted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.SyncCompleted(string(domain.ResourceSites), metrics.ResultFailure)
		return nil, err
	}

	s.logger.Info().
		Str("userId", userID).
		Int("count", len(saved)).
		Msg("User sites fetched and saved")
	s.metrics.SyncCompleted(string(domain.ResourceSites), metrics.ResultSuccess)

	return &SyncResult{
		Success: true,
		Message: "user sites fetched and saved successfully",
		Data:    saved,
	}, nil
}

func mapSite(userID string, site webflow.Site) *domain.Site {
	domains := make([]string, 0, len(site.CustomDomains))
	for _, d := range site.CustomDomains {
		domains = append(domains, d.URL)
	}

	dataCollectionType := site.DataCollectionType
	if dataCollectionType == "" {
		dataCollectionType = "always"
	}

	return &domain.Site{
		UserID:                userID,
		WebflowSiteID:         site.ID,
		DisplayName:           site.DisplayName,
		ShortName:             site.ShortName,
		PreviewURL:            site.PreviewURL,
		TimeZone:              site.TimeZone,
		CreatedOn:             site.CreatedOn,
		LastUpdated:           site.LastUpdated,
		LastPublished:         site.LastPublished,
		ParentFolderID:        site.ParentFolderID,
		CustomDomains:         domains,
		Locales:               mapSiteLocales(site.Locales),
		DataCollectionEnabled: site.DataCollectionEnabled,
		DataCollectionType:    dataCollectionType,
	}
}

func mapSiteLocales(locales webflow.SiteLocales) domain.SiteLocales {
	secondary := make([]domain.Locale, 0, len(locales.Secondary))
	for _, locale := range locales.Secondary {
		secondary = append(secondary, mapLocale(locale))
	}
	return domain.SiteLocales{
		Primary:   mapLocale(locales.Primary),
		Secondary: secondary,
	}
}

func mapLocale(locale webflow.Locale) domain.Locale {
	return domain.Locale{
		LocaleID:       locale.ID,
		CMSLocaleID:    locale.CMSLocaleID,
		Enabled:        locale.Enabled,
		DisplayName:    locale.DisplayName,
		DisplayImageID: locale.DisplayImageID,
		Redirect:       locale.Redirect,
		Subdirectory:   locale.Subdirectory,
		Tag:            locale.Tag,
	}
}
