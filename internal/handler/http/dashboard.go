package http

import (
	"net/http"

	"github.com/MKhiriev/go-lead-keeper/internal/utils"
)

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.DashboardService.GetDashboard(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.dashboard")
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}
