package http

import (
	"net/http"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
)

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	leadID, err := leadIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "*Handler.listActivities")
		return
	}

	activities, err := h.services.ActivityService.ListActivities(r.Context(), leadID)
	if err != nil {
		writeError(w, r, err, "*Handler.listActivities")
		return
	}

	utils.WriteJSON(w, activities, http.StatusOK)
}

// addActivities records one activity object or an array of them on behalf
// of the authenticated user.
func (h *Handler) addActivities(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	actor, err := currentUser(r)
	if err != nil {
		writeError(w, r, err, "*Handler.addActivities")
		return
	}

	leadID, err := leadIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "*Handler.addActivities")
		return
	}

	var batch models.Batch[models.ActivityCreate]
	if err = decodeJSON(r, &batch); err != nil {
		writeError(w, r, err, "*Handler.addActivities")
		return
	}

	activities, err := h.services.ActivityService.AddActivities(r.Context(), leadID, actor, batch)
	if err != nil {
		writeError(w, r, err, "*Handler.addActivities")
		return
	}

	log.Info().Int64("lead_id", leadID).Int("count", len(activities)).Msg("activities added")

	writeBatchResult(w, batch.Many, activities)
}
