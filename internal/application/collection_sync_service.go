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

// CollectionSyncService mirrors the CMS collections of one site.
type CollectionSyncService struct {
	client      ports.WebflowClient
	collections ports.CollectionRepository
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewCollectionSyncService creates a new collection synchronizer
func NewCollectionSyncService(
	client ports.WebflowClient,
	collections ports.CollectionRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *CollectionSyncService {
	return &CollectionSyncService{
		client:      client,
		collections: collections,
		metrics:     m,
		logger:      logger,
	}
}

// FetchAndSaveCollections fetches one site's collections and upserts them
// concurrently. A site without collections is a success, not an error.
func (s *CollectionSyncService) FetchAndSaveCollections(ctx context.Context, userID string, siteID string, accessToken string) (*SyncResult, error) {
	if accessToken == "" {
		return nil, domain.NewValidationError("webflow access token is required")
	}
	if siteID == "" {
		return nil, domain.NewValidationError("site id is required")
	}

	collections, err := s.client.ListCollections(ctx, siteID, accessToken)
	if err != nil {
		s.metrics.SyncCompleted(string(domain.ResourceCollections), metrics.ResultFailure)
		return nil, err
	}

	if len(collections) == 0 {
		s.metrics.SyncCompleted(string(domain.ResourceCollections), metrics.ResultSuccess)
		return &SyncResult{Success: true, Message: "no collections found for the site"}, nil
	}

	saved := make([]*domain.Collection, len(collections))
	g, gctx := errgroup.WithContext(ctx)
	for i, collection := range collections {
		i, collection := i, collection
		g.Go(func() error {
			persisted, err := s.collections.Upsert(gctx, mapCollection(userID, siteID, collection))
			if err != nil {
				return err
			}
			saved[i] = persisted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.SyncCompleted(string(domain.ResourceCollections), metrics.ResultFailure)
		return nil, err
	}

	s.logger.Info().
		Str("userId", userID).
		Str("siteId", siteID).
		Int("count", len(saved)).
		Msg("Site collections fetched and saved")
	s.metrics.SyncCompleted(string(domain.ResourceCollections), metrics.ResultSuccess)

	return &SyncResult{
		Success: true,
		Message: "collections fetched and saved successfully",
		Data:    saved,
	}, nil
}

// Count returns the number of persisted collections matching the filter
func (s *CollectionSyncService) Count(ctx context.Context, filter map[string]any) (int64, error) {
	return s.collections.Count(ctx, filter)
}

func mapCollection(userID string, siteID string, collection webflow.Collection) *domain.Collection {
	liveItems := collection.LiveItems
	if liveItems == nil {
		liveItems = []string{}
	}
	stagedItems := collection.StagedItems
	if stagedItems == nil {
		stagedItems = []string{}
	}
	return &domain.Collection{
		UserID:              userID,
		WebflowSiteID:       siteID,
		WebflowCollectionID: collection.ID,
		DisplayName:         collection.DisplayName,
		SingularName:        collection.SingularName,
		Slug:                collection.Slug,
		CreatedOn:           collection.CreatedOn,
		LastUpdated:         collection.LastUpdated,
		LiveItems:           liveItems,
		StagedItems:         stagedItems,
	}
}
