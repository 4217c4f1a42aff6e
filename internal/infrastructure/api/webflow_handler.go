package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"webflow-mirror-layer/internal/application"
	"webflow-mirror-layer/internal/domain"
	"webflow-mirror-layer/internal/infrastructure/webflow"
	"webflow-mirror-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const oauthStateTTL = 10 * time.Minute

// WebflowHandler exposes the OAuth connect flow and the sync endpoints.
type WebflowHandler struct {
	users          *application.UserService
	siteSync       *application.SiteSyncService
	collectionSync *application.CollectionSyncService
	itemSync       *application.ItemSyncService
	productSync    *application.ProductSyncService
	pageSync       *application.PageSyncService
	fullSync       *application.WebflowSyncService
	oauth          *webflow.OAuthConfig
	states         ports.OAuthStateStore
	dashboardURL   string
	logger         zerolog.Logger
}

// NewWebflowHandler creates a new webflow handler
func NewWebflowHandler(
	users *application.UserService,
	siteSync *application.SiteSyncService,
	collectionSync *application.CollectionSyncService,
	itemSync *application.ItemSyncService,
	productSync *application.ProductSyncService,
	pageSync *application.PageSyncService,
	fullSync *application.WebflowSyncService,
	oauth *webflow.OAuthConfig,
	states ports.OAuthStateStore,
	dashboardURL string,
	logger zerolog.Logger,
) *WebflowHandler {
	return &WebflowHandler{
		users:          users,
		siteSync:       siteSync,
		collectionSync: collectionSync,
		itemSync:       itemSync,
		productSync:    productSync,
		pageSync:       pageSync,
		fullSync:       fullSync,
		oauth:          oauth,
		states:         states,
		dashboardURL:   dashboardURL,
		logger:         logger,
	}
}

// Connect godoc
// @Summary Start the Webflow OAuth flow for a user
// @Tags webflow
// @Param userId path string true "User id"
// @Success 302
// @Router /api/webflow/connect/{userId} [get]
func (h *WebflowHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if _, err := h.users.GetUser(r.Context(), userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	state, err := generateState()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.states.Save(r.Context(), state, userID, oauthStateTTL); err != nil {
		writeError(w, h.logger, err)
		return
	}

	http.Redirect(w, r, h.oauth.AuthorizeURL(state), http.StatusFound)
}

// Callback godoc
// @Summary Complete the Webflow OAuth flow
// @Tags webflow
// @Param code query string true "Authorization code"
// @Param state query string true "Opaque state"
// @Success 302
// @Router /api/webflow/oauth/callback [get]
func (h *WebflowHandler) Callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if state == "" || code == "" {
		writeError(w, h.logger, domain.NewValidationError("state and code are required"))
		return
	}

	userID, err := h.states.Consume(r.Context(), state)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	accessToken, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.users.SaveWebflowToken(r.Context(), userID, accessToken); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info().Str("userId", userID).Msg("Webflow account connected")
	http.Redirect(w, r, h.dashboardURL, http.StatusFound)
}

// SyncAll godoc
// @Summary Run a full sync for the authenticated user
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope
// @Router /api/webflow/sync [post]
func (h *WebflowHandler) SyncAll(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())
	token, err := h.users.AccessToken(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	summaries, err := h.fullSync.FetchAndSaveAllUserData(r.Context(), userID, token)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "webflow data fetched and saved successfully",
		Data:    summaries,
	})
}

// SyncSites godoc
// @Summary Sync the user's sites
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope
// @Router /api/webflow/sync/sites [post]
func (h *WebflowHandler) SyncSites(w http.ResponseWriter, r *http.Request) {
	h.runSync(w, r, func(userID string, token string) (*application.SyncResult, error) {
		return h.siteSync.FetchAndSaveSites(r.Context(), userID, token)
	})
}

// SyncCollections godoc
// @Summary Sync one site's collections
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Param siteId path string true "Webflow site id"
// @Success 200 {object} envelope
// @Router /api/webflow/sites/{siteId}/collections/sync [post]
func (h *WebflowHandler) SyncCollections(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteId")
	h.runSync(w, r, func(userID string, token string) (*application.SyncResult, error) {
		return h.collectionSync.FetchAndSaveCollections(r.Context(), userID, siteID, token)
	})
}

// SyncItems godoc
// @Summary Sync the items of one site's persisted collections
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Param siteId path string true "Webflow site id"
// @Success 200 {object} envelope
// @Router /api/webflow/sites/{siteId}/items/sync [post]
func (h *WebflowHandler) SyncItems(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteId")
	h.runSync(w, r, func(userID string, token string) (*application.SyncResult, error) {
		return h.itemSync.FetchAndSaveSiteItems(r.Context(), userID, siteID, token)
	})
}

// SyncProducts godoc
// @Summary Sync one site's e-commerce products
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Param siteId path string true "Webflow site id"
// @Success 200 {object} envelope
// @Router /api/webflow/sites/{siteId}/products/sync [post]
func (h *WebflowHandler) SyncProducts(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteId")
	h.runSync(w, r, func(userID string, token string) (*application.SyncResult, error) {
		return h.productSync.FetchAndSaveProducts(r.Context(), userID, siteID, token)
	})
}

// SyncPages godoc
// @Summary Sync one site's static pages
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Param siteId path string true "Webflow site id"
// @Success 200 {object} envelope
// @Router /api/webflow/sites/{siteId}/pages/sync [post]
func (h *WebflowHandler) SyncPages(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteId")
	h.runSync(w, r, func(userID string, token string) (*application.SyncResult, error) {
		return h.pageSync.FetchAndSavePages(r.Context(), userID, siteID, token)
	})
}

// CountCollections godoc
// @Summary Count the persisted collections of one site
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Param siteId path string true "Webflow site id"
// @Success 200 {object} envelope
// @Router /api/webflow/sites/{siteId}/collections/count [get]
func (h *WebflowHandler) CountCollections(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())
	siteID := chi.URLParam(r, "siteId")
	count, err := h.collectionSync.Count(r.Context(), map[string]any{
		"userId":        userID,
		"webflowSiteId": siteID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCount(w, count)
}

// CountItems godoc
// @Summary Count the persisted items of one site
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Param siteId path string true "Webflow site id"
// @Success 200 {object} envelope
// @Router /api/webflow/sites/{siteId}/items/count [get]
func (h *WebflowHandler) CountItems(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())
	siteID := chi.URLParam(r, "siteId")
	count, err := h.itemSync.Count(r.Context(), map[string]any{
		"userId": userID,
		"siteId": siteID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCount(w, count)
}

// CountProducts godoc
// @Summary Count the persisted products of one site
// @Tags webflow
// @Produce json
// @Security BearerAuth
// @Param siteId path string true "Webflow site id"
// @Success 200 {object} envelope
// @Router /api/webflow/sites/{siteId}/products/count [get]
func (h *WebflowHandler) CountProducts(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())
	siteID := chi.URLParam(r, "siteId")
	count, err := h.productSync.Count(r.Context(), map[string]any{
		"userId": userID,
		"siteId": siteID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeCount(w, count)
}

func (h *WebflowHandler) runSync(w http.ResponseWriter, r *http.Request, run func(userID string, token string) (*application.SyncResult, error)) {
	userID := domain.GetUserIDFromContext(r.Context())
	token, err := h.users.AccessToken(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	result, err := run(userID, token)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: result.Success,
		Message: result.Message,
		Data:    result.Data,
	})
}

func writeCount(w http.ResponseWriter, count int64) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    map[string]int64{"count": count},
	})
}

func generateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
