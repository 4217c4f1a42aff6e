package application

import (
	"context"
	"testing"

	"webflow-mirror-layer/internal/infrastructure/webflow"

	"github.com/rs/zerolog"
)

func TestFetchAndSavePagesPersistsPages(t *testing.T) {
	client := newFakeWebflowClient()
	client.pages["site-1"] = []webflow.Page{
		{ID: "page-1", Title: "Home", SEO: &webflow.PageSEO{Title: "Home page"}},
		{ID: "page-2", Title: "About"},
	}
	repo := newMemPageRepository()
	service := NewPageSyncService(client, repo, nil, zerolog.Nop())

	result, err := service.FetchAndSavePages(context.Background(), "user-1", "site-1", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("result not successful: %+v", result)
	}

	count, err := repo.Count(context.Background(), map[string]any{"siteId": "site-1"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("persisted pages = %d, want 2", count)
	}
}

func TestMapPageWithoutSEO(t *testing.T) {
	page := mapPage("user-1", "site-1", webflow.Page{ID: "page-1", Title: "Home"})
	if page.SEO.Title != "" || page.SEO.Description != "" {
		t.Errorf("SEO = %+v, want empty block for a page without seo data", page.SEO)
	}
	if page.WebflowSiteID != "site-1" || page.UserID != "user-1" {
		t.Errorf("ownership fields not set: %+v", page)
	}
}

func TestMapCollectionInitializesItemLists(t *testing.T) {
	collection := mapCollection("user-1", "site-1", webflow.Collection{ID: "col-1"})
	if collection.LiveItems == nil || collection.StagedItems == nil {
		t.Error("item id lists should be initialized, not nil")
	}
}
