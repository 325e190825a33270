package http

import (
	"net/http"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
)

func (h *Handler) searchLeads(w http.ResponseWriter, r *http.Request) {
	filter, err := leadFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err, "*Handler.searchLeads")
		return
	}

	leads, err := h.services.LeadService.SearchLeads(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "*Handler.searchLeads")
		return
	}

	utils.WriteJSON(w, leads, http.StatusOK)
}

// createLeads accepts one lead object or an array of them and answers in
// the same shape.
func (h *Handler) createLeads(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var batch models.Batch[models.LeadCreate]
	if err := decodeJSON(r, &batch); err != nil {
		writeError(w, r, err, "*Handler.createLeads")
		return
	}

	leads, err := h.services.LeadService.CreateLeads(r.Context(), batch)
	if err != nil {
		writeError(w, r, err, "*Handler.createLeads")
		return
	}

	log.Info().Int("count", len(leads)).Bool("many", batch.Many).Msg("leads created")

	writeBatchResult(w, batch.Many, leads)
}

func (h *Handler) getLead(w http.ResponseWriter, r *http.Request) {
	leadID, err := leadIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "*Handler.getLead")
		return
	}

	lead, err := h.services.LeadService.GetLead(r.Context(), leadID)
	if err != nil {
		writeError(w, r, err, "*Handler.getLead")
		return
	}

	utils.WriteJSON(w, lead, http.StatusOK)
}

func (h *Handler) updateLead(w http.ResponseWriter, r *http.Request) {
	leadID, err := leadIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "*Handler.updateLead")
		return
	}

	var update models.LeadUpdate
	if err = decodeJSON(r, &update); err != nil {
		writeError(w, r, err, "*Handler.updateLead")
		return
	}

	lead, err := h.services.LeadService.UpdateLead(r.Context(), leadID, update)
	if err != nil {
		writeError(w, r, err, "*Handler.updateLead")
		return
	}

	utils.WriteJSON(w, lead, http.StatusOK)
}

func (h *Handler) deleteLead(w http.ResponseWriter, r *http.Request) {
	leadID, err := leadIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "*Handler.deleteLead")
		return
	}

	if err = h.services.LeadService.DeleteLead(r.Context(), leadID); err != nil {
		writeError(w, r, err, "*Handler.deleteLead")
		return
	}

	logger.FromRequest(r).Info().Int64("lead_id", leadID).Msg("lead deleted")

	w.WriteHeader(http.StatusNoContent)
}

// writeBatchResult answers 201 with a list when a list was sent and with
// the single created item otherwise.
func writeBatchResult[T any](w http.ResponseWriter, many bool, items []T) {
	if many || len(items) != 1 {
		utils.WriteJSON(w, items, http.StatusCreated)
		return
	}
	utils.WriteJSON(w, items[0], http.StatusCreated)
}
