package application

import (
	"context"
	"errors"
	"testing"

	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/infrastructure/webflow"

	"github.com/rs/zerolog"
)

func TestFetchAndSaveSitesRequiresToken(t *testing.T) {
	service := NewSiteSyncService(newFakeWebflowClient(), newMemSiteRepository(), nil, zerolog.Nop())

	_, err := service.FetchAndSaveSites(context.Background(), "user-1", "")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) || domainErr.Kind != domain.ErrKindValidation {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestFetchAndSaveSitesNoSites(t *testing.T) {
	service := NewSiteSyncService(newFakeWebflowClient(), newMemSiteRepository(), nil, zerolog.Nop())

	result, err := service.FetchAndSaveSites(context.Background(), "user-1", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("result.Success = false, want true for an account without sites")
	}
	if result.Message != "user has no sites" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestFetchAndSaveSitesIsIdempotent(t *testing.T) {
	client := newFakeWebflowClient()
	client.sites = []webflow.Site{
		{ID: "site-1", DisplayName: "Portfolio"},
		{ID: "site-2", DisplayName: "Store"},
	}
	repo := newMemSiteRepository()
	service := NewSiteSyncService(client, repo, nil, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := service.FetchAndSaveSites(context.Background(), "user-1", "tok"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sites, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sites) != 2 {
		t.Errorf("got %d sites after two syncs, want 2", len(sites))
	}
}

func TestMapSiteDefaultsDataCollectionType(t *testing.T) {
	site := mapSite("user-1", webflow.Site{ID: "site-1"})
	if site.DataCollectionType != "always" {
		t.Errorf("DataCollectionType = %q, want %q", site.DataCollectionType, "always")
	}
}
