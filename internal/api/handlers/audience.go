package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/service"
)

type AudienceHandler struct {
	svc *service.AudienceService
}

func NewAudienceHandler(svc *service.AudienceService) *AudienceHandler {
	return &AudienceHandler{svc: svc}
}

type listAudiencesResponse struct {
	Audiences []domain.AudienceDefinition `json:"audiences"`
	Count     int                         `json:"count"`
}

func (h *AudienceHandler) Create(w http.ResponseWriter, r *http.Request) {
	graphID, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	var def domain.AudienceDefinition
	if err := decodeJSON(w, r, &def); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	def.GraphID = graphID

	if err := h.svc.Create(r.Context(), &def); err != nil {
		writeServiceError(w, err, "failed to create audience")
		return
	}
	writeJSON(w, http.StatusCreated, def)
}

func (h *AudienceHandler) ListByGraph(w http.ResponseWriter, r *http.Request) {
	graphID, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	audiences, err := h.svc.ListByGraph(r.Context(), graphID)
	if err != nil {
		writeServiceError(w, err, "failed to list audiences")
		return
	}
	if audiences == nil {
		audiences = []domain.AudienceDefinition{}
	}
	writeJSON(w, http.StatusOK, listAudiencesResponse{Audiences: audiences, Count: len(audiences)})
}

func (h *AudienceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid audience id")
		return
	}
	def, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get audience")
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (h *AudienceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid audience id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete audience")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
