package api

import (
	"net/http"

	"webflow-mirror-layer/internal/application"
	"webflow-mirror-layer/internal/domain"

	"github.com/rs/zerolog"
)

// DashboardHandler serves the per-site summary rows.
type DashboardHandler struct {
	dashboard *application.DashboardService
	logger    zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *application.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Get godoc
// @Summary Dashboard summary for the authenticated user
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} envelope
// @Router /api/dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())
	summaries, err := h.dashboard.GetDashboardData(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: summaries})
}
