package webflow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"webflow-mirror-layer/internal/domain"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{BaseURL: server.URL}, zerolog.Nop())
}

func TestListSitesSetsAuthHeaders(t *testing.T) {
	var gotAuth, gotVersion string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("accept-version")
		w.Write([]byte(`{"sites":[{"id":"site-1","displayName":"Portfolio"}]}`))
	})

	sites, err := client.ListSites(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("ListSites returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotVersion != "2.0.0" {
		t.Errorf("accept-version header = %q, want %q", gotVersion, "2.0.0")
	}
	if len(sites) != 1 || sites[0].ID != "site-1" {
		t.Errorf("unexpected sites: %+v", sites)
	}
}

func TestListCollectionsPropagatesUpstreamStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"Rate limit hit","code":"too_many_requests"}`))
	})

	_, err := client.ListCollections(context.Background(), "site-1", "tok")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("error is not *domain.Error: %v", err)
	}
	if domainErr.Kind != domain.ErrKindUpstream {
		t.Errorf("error kind = %q, want %q", domainErr.Kind, domain.ErrKindUpstream)
	}
	if domainErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", domainErr.StatusCode, http.StatusTooManyRequests)
	}
	if domainErr.Message != "Rate limit hit" {
		t.Errorf("message = %q, want upstream message", domainErr.Message)
	}
}

func TestEcommerceEnabled(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantEnabled bool
		wantErr     bool
	}{
		{
			name:        "enabled site",
			status:      http.StatusOK,
			body:        `{"items":[]}`,
			wantEnabled: true,
		},
		{
			name:   "ecommerce not initialized",
			status: http.StatusConflict,
			body:   `{"message":"Ecommerce is not yet initialized","code":"conflict"}`,
		},
		{
			name:    "unrelated conflict",
			status:  http.StatusConflict,
			body:    `{"message":"Site is being published","code":"conflict"}`,
			wantErr: true,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"message":"boom"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			enabled, err := client.EcommerceEnabled(context.Background(), "site-1", "tok")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if enabled != tt.wantEnabled {
				t.Errorf("enabled = %v, want %v", enabled, tt.wantEnabled)
			}
		})
	}
}

func TestListProductsParsesBundles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{
			"product":{
				"id":"prod-1",
				"fieldData":{
					"name":"T-Shirt",
					"slug":"t-shirt",
					"sku-properties":[{"id":"color","name":"Color","enum":[{"id":"red","name":"Red","slug":"red"}]}]
				}
			},
			"skus":[{
				"id":"sku-1",
				"fieldData":{"name":"T-Shirt Red","price":{"value":25.5,"unit":"EUR"},"sku-values":{"color":"red"}}
			}]
		}]}`))
	})

	bundles, err := client.ListProducts(context.Background(), "site-1", "tok")
	if err != nil {
		t.Fatalf("ListProducts returned error: %v", err)
	}
	if len(bundles) != 1 {
		t.Fatalf("got %d bundles, want 1", len(bundles))
	}
	bundle := bundles[0]
	if bundle.Product.ID != "prod-1" {
		t.Errorf("product id = %q", bundle.Product.ID)
	}
	if len(bundle.Product.FieldData.SkuProperties) != 1 {
		t.Fatalf("got %d sku properties, want 1", len(bundle.Product.FieldData.SkuProperties))
	}
	if bundle.Product.FieldData.SkuProperties[0].Enum[0].Slug != "red" {
		t.Errorf("unexpected sku property enum: %+v", bundle.Product.FieldData.SkuProperties[0].Enum)
	}
	if len(bundle.Skus) != 1 || bundle.Skus[0].FieldData.Price.Value != 25.5 {
		t.Errorf("unexpected skus: %+v", bundle.Skus)
	}
}

func TestUpstreamMessageFallsBackToRawBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.ListPages(context.Background(), "site-1", "tok")
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("error is not *domain.Error: %v", err)
	}
	if domainErr.Message != "upstream exploded" {
		t.Errorf("message = %q, want raw body", domainErr.Message)
	}
}
