package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/caes/internal/domain"
)

type StandardsHandler struct {
	registry *domain.StandardRegistry
}

func NewStandardsHandler(registry *domain.StandardRegistry) *StandardsHandler {
	return &StandardsHandler{registry: registry}
}

type listStandardsResponse struct {
	Standards  []string          `json:"standards"`
	Thresholds domain.Thresholds `json:"thresholds"`
}

func (h *StandardsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listStandardsResponse{
		Standards:  h.registry.Names(),
		Thresholds: h.registry.Thresholds(),
	})
}
