package application

import (
	"context"
	"fmt"
	"strings"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/infrastructure/metrics"
	"webflow-mirror-layer/internal/infrastructure/webflow"
	"webflow-mirror-layer/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ItemSyncService mirrors the CMS items of one site. It fans out over the
// locally persisted collections of the site, so the collection sync for the
// same site must have committed first.
type ItemSyncService struct {
	client      ports.WebflowClient
	collections ports.CollectionRepository
	items       ports.ItemRepository
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewItemSyncService creates a new item synchronizer
func NewItemSyncService(
	client ports.WebflowClient,
	collections ports.CollectionRepository,
	items ports.ItemRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ItemSyncService {
	return &ItemSyncService{
		client:      client,
		collections: collections,
		items:       items,
		metrics:     m,
		logger:      logger,
	}
}

// FetchAndSaveSiteItems syncs the items of every persisted collection of a
// site. Per-collection fetches run concurrently and fail independently: one
// bad collection is recorded in its outcome without aborting its siblings.
// The call fails outright only when every collection failed.
func (s *ItemSyncService) FetchAndSaveSiteItems(ctx context.Context, userID string, siteID string, accessToken string) (*SyncResult, error) {
	if accessToken == "" {
		return nil, domain.NewValidationError("webflow access token is required")
	}
	if siteID == "" {
		return nil, domain.NewValidationError("site id is required")
	}

	collections, err := s.collections.ListBySite(ctx, siteID)
	if err != nil {
		s.metrics.SyncCompleted(string(domain.ResourceItems), metrics.ResultFailure)
		return nil, err
	}
	if len(collections) == 0 {
		s.metrics.SyncCompleted(string(domain.ResourceItems), metrics.ResultSuccess)
		return &SyncResult{Success: true, Message: "no collections found for this site"}, nil
	}

	outcomes := make([]CollectionSyncOutcome, len(collections))
	var g errgroup.Group
	for i, collection := range collections {
		i := i
		collectionID := collection.WebflowCollectionID
		g.Go(func() error {
			count, err := s.syncCollectionItems(ctx, userID, siteID, collectionID, accessToken)
			if err != nil {
				s.logger.Error().
					Err(err).
					Str("collectionId", collectionID).
					Str("siteId", siteID).
					Msg("Failed to sync collection items")
				outcomes[i] = CollectionSyncOutcome{
					Kind:         OutcomeFailed,
					CollectionID: collectionID,
					Detail:       err.Error(),
				}
				return nil
			}
			outcomes[i] = CollectionSyncOutcome{
				Kind:         OutcomeOK,
				CollectionID: collectionID,
				ItemCount:    count,
			}
			return nil
		})
	}
	// Sub-task errors are captured in outcomes, never returned.
	_ = g.Wait()

	var failed []string
	for _, outcome := range outcomes {
		if outcome.Kind == OutcomeFailed {
			failed = append(failed, outcome.CollectionID)
		}
	}

	if len(failed) == len(collections) {
		s.metrics.SyncCompleted(string(domain.ResourceItems), metrics.ResultFailure)
		return nil, domain.NewUpstreamError(0,
			fmt.Sprintf("failed to fetch items for every collection of site %s", siteID), nil)
	}

	message := "all collection items fetched and saved successfully"
	if len(failed) > 0 {
		message = fmt.Sprintf("items synced with failures for collections: %s", strings.Join(failed, ", "))
	}

	s.metrics.SyncCompleted(string(domain.ResourceItems), metrics.ResultSuccess)
	return &SyncResult{
		Success: true,
		Message: message,
		Data:    outcomes,
	}, nil
}

// syncCollectionItems fetches and upserts the items of one collection.
// Errors are wrapped with the collection id for diagnosis.
func (s *ItemSyncService) syncCollectionItems(ctx context.Context, userID string, siteID string, collectionID string, accessToken string) (int, error) {
	items, err := s.client.ListItems(ctx, collectionID, accessToken)
	if err != nil {
		return 0, fmt.Errorf("collection %s: %w", collectionID, err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		item := item
		g.Go(func() error {
			if _, err := s.items.Upsert(gctx, mapItem(userID, siteID, collectionID, item)); err != nil {
				return fmt.Errorf("collection %s: %w", collectionID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(items), nil
}

// Count returns the number of persisted items matching the filter
func (s *ItemSyncService) Count(ctx context.Context, filter map[string]any) (int64, error) {
	return s.items.Count(ctx, filter)
}

func mapItem(userID string, siteID string, collectionID string, item webflow.Item) *domain.Item {
	status := domain.ItemStatusLive
	if item.IsDraft {
		status = domain.ItemStatusStaged
	}
	fieldData := item.FieldData
	if fieldData == nil {
		fieldData = map[string]any{}
	}
	return &domain.Item{
		ItemID:        item.ID,
		CollectionID:  collectionID,
		SiteID:        siteID,
		UserID:        userID,
		FieldData:     fieldData,
		CMSLocaleID:   item.CMSLocaleID,
		LastPublished: item.LastPublished,
		LastUpdated:   item.LastUpdated,
		CreatedOn:     item.CreatedOn,
		IsArchived:    item.IsArchived,
		IsDraft:       item.IsDraft,
		Status:        status,
	}
}
