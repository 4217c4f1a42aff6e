package application

import (
	"context"
	"testing"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/infrastructure/webflow"

	"github.com/rs/zerolog"
)

func allFetched() domain.SyncState {
	state := domain.SyncState{}
	for _, kind := range domain.ResourceKinds() {
		state[kind] = true
	}
	return state
}

func TestGetDashboardDataUnknownUser(t *testing.T) {
	f := newOrchestratorFixture()
	service := NewDashboardService(f.users, f.service, plainEncryption{}, zerolog.Nop())

	_, err := service.GetDashboardData(context.Background(), "ghost")
	if domain.KindOf(err) != domain.ErrKindNotFound {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestGetDashboardDataServesLocalDataWhenAllFetched(t *testing.T) {
	f := newOrchestratorFixture()
	f.users.users["user-1"] = &domain.User{
		ID:                         "user-1",
		Email:                      "a@b.c",
		WebflowAccessToken:         "enc:tok",
		WebflowDataFetchedAndSaved: allFetched(),
	}
	if _, err := f.sites.Upsert(context.Background(), &domain.Site{
		UserID:        "user-1",
		WebflowSiteID: "site-1",
		DisplayName:   "Portfolio",
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	service := NewDashboardService(f.users, f.service, plainEncryption{}, zerolog.Nop())

	summaries, err := service.GetDashboardData(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].WebsiteName != "Portfolio" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
	if got := f.client.callCount("sites"); got != 0 {
		t.Errorf("upstream site fetches = %d, want 0 when all flags are set", got)
	}
}

func TestGetDashboardDataRunsFullSyncWhenFlagsMissing(t *testing.T) {
	f := newOrchestratorFixture()
	f.users.users["user-1"] = &domain.User{
		ID:                 "user-1",
		Email:              "a@b.c",
		WebflowAccessToken: "enc:tok",
		WebflowDataFetchedAndSaved: domain.SyncState{
			domain.ResourceSites: true,
		},
	}
	f.client.sites = []webflow.Site{{ID: "site-1", DisplayName: "Portfolio"}}
	service := NewDashboardService(f.users, f.service, plainEncryption{}, zerolog.Nop())

	summaries, err := service.GetDashboardData(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.client.callCount("sites"); got != 1 {
		t.Errorf("upstream site fetches = %d, want 1 when a flag is missing", got)
	}
	if len(summaries) != 1 || summaries[0].WebsiteName != "Portfolio" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}

func TestGetDashboardDataWithoutConnectedAccount(t *testing.T) {
	f := newOrchestratorFixture()
	f.users.users["user-1"] = &domain.User{ID: "user-1", Email: "a@b.c"}
	service := NewDashboardService(f.users, f.service, plainEncryption{}, zerolog.Nop())

	_, err := service.GetDashboardData(context.Background(), "user-1")
	if domain.KindOf(err) != domain.ErrKindValidation {
		t.Errorf("error = %v, want validation error for a disconnected account", err)
	}
}

func TestGetDashboardDataNoSitesPlaceholder(t *testing.T) {
	f := newOrchestratorFixture()
	f.users.users["user-1"] = &domain.User{
		ID:                         "user-1",
		Email:                      "a@b.c",
		WebflowAccessToken:         "enc:tok",
		WebflowDataFetchedAndSaved: allFetched(),
	}
	service := NewDashboardService(f.users, f.service, plainEncryption{}, zerolog.Nop())

	summaries, err := service.GetDashboardData(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Status != domain.StatusNotConnected {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}
}
