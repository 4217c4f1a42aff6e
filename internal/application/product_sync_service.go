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

// ProductSyncService mirrors the e-commerce products of one site. Sites
// without e-commerce short-circuit to a not-applicable success.
type ProductSyncService struct {
	client   ports.WebflowClient
	products ports.ProductRepository
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewProductSyncService creates a new product synchronizer
func NewProductSyncService(
	client ports.WebflowClient,
	products ports.ProductRepository,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ProductSyncService {
	return &ProductSyncService{
		client:   client,
		products: products,
		metrics:  m,
		logger:   logger,
	}
}

// FetchAndSaveProducts checks e-commerce enablement before fetching. A
// disabled site returns success with nil data and persists nothing.
func (s *ProductSyncService) FetchAndSaveProducts(ctx context.Context, userID string, siteID string, accessToken string) (*SyncResult, error) {
	if accessToken == "" {
		return nil, domain.NewValidationError("webflow access token is required")
	}
	if siteID == "" {
		return nil, domain.NewValidationError("site id is required")
	}

	enabled, err := s.client.EcommerceEnabled(ctx, siteID, accessToken)
	if err != nil {
		s.metrics.SyncCompleted(string(domain.ResourceProducts), metrics.ResultFailure)
		return nil, err
	}
	if !enabled {
		s.logger.Info().
			Str("siteId", siteID).
			Msg("Ecommerce is not initialized for site, skipping product sync")
		s.metrics.SyncCompleted(string(domain.ResourceProducts), metrics.ResultNotApplicable)
		return &SyncResult{Success: true, Message: "ecommerce is not initialized for this site"}, nil
	}

	bundles, err := s.client.ListProducts(ctx, siteID, accessToken)
	if err != nil {
		s.metrics.SyncCompleted(string(domain.ResourceProducts), metrics.ResultFailure)
		return nil, err
	}
	if len(bundles) == 0 {
		s.metrics.SyncCompleted(string(domain.ResourceProducts), metrics.ResultSuccess)
		return &SyncResult{Success: true, Message: "no products found for the site"}, nil
	}

	// Validate every product before the first write so a bad payload does
	// not leave a partial batch behind.
	mapped := make([]*domain.Product, len(bundles))
	for i, bundle := range bundles {
		product := mapProduct(userID, siteID, bundle)
		if err := product.Validate(); err != nil {
			s.metrics.SyncCompleted(string(domain.ResourceProducts), metrics.ResultFailure)
			return nil, err
		}
		mapped[i] = product
	}

	saved := make([]*domain.Product, len(mapped))
	g, gctx := errgroup.WithContext(ctx)
	for i, product := range mapped {
		i, product := i, product
		g.Go(func() error {
			persisted, err := s.products.Upsert(gctx, product)
			if err != nil {
				return err
			}
			saved[i] = persisted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.SyncCompleted(string(domain.ResourceProducts), metrics.ResultFailure)
		return nil, err
	}

	s.logger.Info().
		Str("userId", userID).
		Str("siteId", siteID).
		Int("count", len(saved)).
		Msg("Site products fetched and saved")
	s.metrics.SyncCompleted(string(domain.ResourceProducts), metrics.ResultSuccess)

	return &SyncResult{
		Success: true,
		Message: "products fetched and saved successfully",
		Data:    saved,
	}, nil
}

// Count returns the number of persisted products matching the filter
func (s *ProductSyncService) Count(ctx context.Context, filter map[string]any) (int64, error) {
	return s.products.Count(ctx, filter)
}

// mapProduct flattens the nested product+skus payload into the internal
// product shape, field by field.
func mapProduct(userID string, siteID string, bundle webflow.ProductBundle) *domain.Product {
	payload := bundle.Product

	properties := make([]domain.SkuProperty, 0, len(payload.FieldData.SkuProperties))
	for _, property := range payload.FieldData.SkuProperties {
		options := make([]domain.SkuPropertyOption, 0, len(property.Enum))
		for _, option := range property.Enum {
			options = append(options, domain.SkuPropertyOption{
				OptionID: option.ID,
				Name:     option.Name,
				Slug:     option.Slug,
			})
		}
		properties = append(properties, domain.SkuProperty{
			PropertyID: property.ID,
			Name:       property.Name,
			Enum:       options,
		})
	}

	skus := make([]domain.Sku, 0, len(bundle.Skus))
	for _, sku := range bundle.Skus {
		skus = append(skus, mapSku(sku))
	}

	return &domain.Product{
		UserID:        userID,
		SiteID:        siteID,
		ProductID:     payload.ID,
		CMSLocaleID:   payload.CMSLocaleID,
		LastPublished: payload.LastPublished,
		LastUpdated:   payload.LastUpdated,
		CreatedOn:     payload.CreatedOn,
		IsArchived:    payload.IsArchived,
		IsDraft:       payload.IsDraft,
		FieldData: domain.ProductFieldData{
			Name:          payload.FieldData.Name,
			Slug:          payload.FieldData.Slug,
			Description:   payload.FieldData.Description,
			Shippable:     payload.FieldData.Shippable,
			SkuProperties: properties,
			TaxCategory:   payload.FieldData.TaxCategory,
			DefaultSku:    payload.FieldData.DefaultSku,
			ECProductType: payload.FieldData.ECProductType,
		},
		Skus: skus,
	}
}

func mapSku(sku webflow.SkuPayload) domain.Sku {
	price := domain.Price{Unit: domain.DefaultCurrencyUnit}
	if sku.FieldData.Price != nil {
		price.Value = sku.FieldData.Price.Value
		if sku.FieldData.Price.Unit != "" {
			price.Unit = sku.FieldData.Price.Unit
		}
	}
	skuValues := sku.FieldData.SkuValues
	if skuValues == nil {
		skuValues = map[string]string{}
	}
	return domain.Sku{
		SkuID:         sku.ID,
		CMSLocaleID:   sku.CMSLocaleID,
		LastPublished: sku.LastPublished,
		LastUpdated:   sku.LastUpdated,
		CreatedOn:     sku.CreatedOn,
		FieldData: domain.SkuFieldData{
			Name:      sku.FieldData.Name,
			Slug:      sku.FieldData.Slug,
			Price:     price,
			SkuValues: skuValues,
			Quantity:  sku.FieldData.Quantity,
		},
	}
}
