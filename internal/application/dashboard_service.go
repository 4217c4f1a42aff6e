package application

import (
	"context"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/ports"

	"github.com/rs/zerolog"
)

// DashboardService serves the per-site dashboard. It decides between reading
// the local mirror and triggering a fresh full sync based on the user's
// per-resource fetched flags.
type DashboardService struct {
	users      ports.UserRepository
	sync       *WebflowSyncService
	encryption ports.EncryptionService
	logger     zerolog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	users ports.UserRepository,
	sync *WebflowSyncService,
	encryption ports.EncryptionService,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		users:      users,
		sync:       sync,
		encryption: encryption,
		logger:     logger,
	}
}

// GetDashboardData returns one summary row per site. When every resource
// kind has been fetched before, the rows come straight from the local
// mirror without touching the upstream API; otherwise a full sync runs
// first.
func (s *DashboardService) GetDashboardData(ctx context.Context, userID string) ([]domain.SiteSummary, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user id is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}

	if user.WebflowDataFetchedAndSaved.AllFetched() {
		s.logger.Debug().
			Str("userId", userID).
			Msg("All resources already fetched, serving dashboard from local data")
		return s.sync.Summarize(ctx, userID)
	}

	if user.WebflowAccessToken == "" {
		return nil, domain.NewValidationError("webflow account is not connected")
	}

	accessToken, err := s.encryption.Decrypt(user.WebflowAccessToken)
	if err != nil {
		return nil, err
	}

	return s.sync.FetchAndSaveAllUserData(ctx, userID, accessToken)
}
