package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/service"
)

// DashboardHandler ministry lifecycle stats.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	stats, err := h.dashboard.Stats(r.Context(), mid)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(stats))
}
