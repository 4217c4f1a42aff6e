package application

import (
	"context"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// WebflowSyncService orchestrates a full-account synchronization: sites
// first, then per-site fan-out across the remaining resource kinds.
type WebflowSyncService struct {
	siteSync       *SiteSyncService
	collectionSync *CollectionSyncService
	itemSync       *ItemSyncService
	productSync    *ProductSyncService
	pageSync       *PageSyncService
	sites          ports.SiteRepository
	users          ports.UserRepository
	logger         zerolog.Logger
}

// NewWebflowSyncService creates the sync orchestrator
func NewWebflowSyncService(
	siteSync *SiteSyncService,
	collectionSync *CollectionSyncService,
	itemSync *ItemSyncService,
	productSync *ProductSyncService,
	pageSync *PageSyncService,
	sites ports.SiteRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *WebflowSyncService {
	return &WebflowSyncService{
		siteSync:       siteSync,
		collectionSync: collectionSync,
		itemSync:       itemSync,
		productSync:    productSync,
		pageSync:       pageSync,
		sites:          sites,
		users:          users,
		logger:         logger,
	}
}

// FetchAndSaveAllUserData runs a full sync for one account and returns the
// per-site dashboard summaries computed from the persisted state.
//
// Sites run concurrently, and within a site pages, products and the CMS
// chain run as separate branches. Collections and items of the same site
// form one sequential branch because items fan out over the persisted
// collections of that site.
func (s *WebflowSyncService) FetchAndSaveAllUserData(ctx context.Context, userID string, accessToken string) ([]domain.SiteSummary, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user id is required")
	}
	if accessToken == "" {
		return nil, domain.NewValidationError("webflow access token is required")
	}

	if _, err := s.siteSync.FetchAndSaveSites(ctx, userID, accessToken); err != nil {
		return nil, err
	}

	sites, err := s.sites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, site := range sites {
		siteID := site.WebflowSiteID

		g.Go(func() error {
			if _, err := s.collectionSync.FetchAndSaveCollections(gctx, userID, siteID, accessToken); err != nil {
				return err
			}
			_, err := s.itemSync.FetchAndSaveSiteItems(gctx, userID, siteID, accessToken)
			return err
		})
		g.Go(func() error {
			_, err := s.pageSync.FetchAndSavePages(gctx, userID, siteID, accessToken)
			return err
		})
		g.Go(func() error {
			_, err := s.productSync.FetchAndSaveProducts(gctx, userID, siteID, accessToken)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, kind := range domain.ResourceKinds() {
		if err := s.users.MarkResourceFetched(ctx, userID, kind); err != nil {
			// The mirror is already consistent; a failed flag update only
			// forces an extra sync next time.
			s.logger.Warn().
				Err(err).
				Str("userId", userID).
				Str("kind", string(kind)).
				Msg("Failed to mark resource fetched")
		}
	}

	return s.Summarize(ctx, userID)
}

// Summarize computes one dashboard row per persisted site via concurrent
// count queries. A user without sites gets the placeholder row.
func (s *WebflowSyncService) Summarize(ctx context.Context, userID string) ([]domain.SiteSummary, error) {
	sites, err := s.sites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(sites) == 0 {
		return []domain.SiteSummary{domain.NoSiteSummary()}, nil
	}

	summaries := make([]domain.SiteSummary, len(sites))
	g, gctx := errgroup.WithContext(ctx)
	for i, site := range sites {
		i, site := i, site
		g.Go(func() error {
			summary, err := s.summarizeSite(gctx, userID, site)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *WebflowSyncService) summarizeSite(ctx context.Context, userID string, site *domain.Site) (domain.SiteSummary, error) {
	siteID := site.WebflowSiteID

	var collections, items, products int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.collectionSync.Count(gctx, map[string]any{"userId": userID, "webflowSiteId": siteID})
		collections = count
		return err
	})
	g.Go(func() error {
		count, err := s.itemSync.Count(gctx, map[string]any{"userId": userID, "siteId": siteID})
		items = count
		return err
	})
	g.Go(func() error {
		count, err := s.productSync.Count(gctx, map[string]any{"userId": userID, "siteId": siteID})
		products = count
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.SiteSummary{}, err
	}

	name := site.DisplayName
	if name == "" {
		name = "No Name"
	}
	lastSync := site.UpdatedAt
	return domain.SiteSummary{
		WebsiteName:      name,
		LastSync:         &lastSync,
		Status:           domain.StatusConnected,
		TotalCollections: collections,
		TotalItems:       items,
		TotalProducts:    products,
	}, nil
}
