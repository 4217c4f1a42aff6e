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

// PageSyncService mirrors the static pages of one site.
type PageSyncService struct {
	client  ports.WebflowClient
	pages   ports.PageRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewPageSyncService creates a new page synchronizer
func NewPageSyncService(
	client ports.WebflowClient,
	pages ports.PageRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *PageSyncService {
	return &PageSyncService{
		client:  client,
		pages:   pages,
		metrics: m,
		logger:  logger,
	}
}

// FetchAndSavePages fetches one site's pages and upserts them concurrently.
func (s *PageSyncService) FetchAndSavePages(ctx context.Context, userID string, siteID string, accessToken string) (*SyncResult, error) {
	if accessToken == "" {
		return nil, domain.NewValidationError("webflow access token is required")
	}
	if siteID == "" {
		return nil, domain.NewValidationError("site id is required")
	}

	pages, err := s.client.ListPages(ctx, siteID, accessToken)
	if err != nil {
		s.metrics.SyncCompleted(string(domain.ResourcePages), metrics.ResultFailure)
		return nil, err
	}

	if len(pages) == 0 {
		s.metrics.SyncCompleted(string(domain.ResourcePages), metrics.ResultSuccess)
		return &SyncResult{Success: true, Message: "no pages found for the site"}, nil
	}

	saved := make([]*domain.Page, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			persisted, err := s.pages.Upsert(gctx, mapPage(userID, siteID, page))
			if err != nil {
				return err
			}
			saved[i] = persisted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.SyncCompleted(string(domain.ResourcePages), metrics.ResultFailure)
		return nil, err
	}

	s.logger.Info().
		Str("userId", userID).
		Str("siteId", siteID).
		Int("count", len(saved)).
		Msg("Site pages fetched and saved")
	s.metrics.SyncCompleted(string(domain.ResourcePages), metrics.ResultSuccess)

	return &SyncResult{
		Success: true,
		Message: "pages fetched and saved successfully",
		Data:    saved,
	}, nil
}

func mapPage(userID string, siteID string, page webflow.Page) *domain.Page {
	// SEO is optional upstream; an absent block maps to empty fields.
	var seo domain.PageSEO
	if page.SEO != nil {
		seo.Title = page.SEO.Title
		seo.Description = page.SEO.Description
	}
	return &domain.Page{
		WebflowPageID: page.ID,
		WebflowSiteID: siteID,
		UserID:        userID,
		Title:         page.Title,
		Slug:          page.Slug,
		CreatedOn:     page.CreatedOn,
		LastUpdated:   page.LastUpdated,
		Archived:      page.Archived,
		Draft:         page.Draft,
		CanBranch:     page.CanBranch,
		IsBranch:      page.IsBranch,
		IsMembersOnly: page.IsMembersOnly,
		SEO:           seo,
	}
}
