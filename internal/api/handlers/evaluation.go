package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Harshitk-cp/caes/internal/service"
)

type EvaluationHandler struct {
	svc     *service.EvaluationService
	timeout time.Duration
}

// NewEvaluationHandler serves evaluation requests. A positive timeout
// bounds each request; zero leaves only the client's context.
func NewEvaluationHandler(svc *service.EvaluationService, timeout time.Duration) *EvaluationHandler {
	return &EvaluationHandler{svc: svc, timeout: timeout}
}

func (h *EvaluationHandler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	graphID, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	var req service.EvaluationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()
	report, err := h.svc.Evaluate(ctx, graphID, req)
	if err != nil {
		writeServiceError(w, err, "failed to evaluate graph")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *EvaluationHandler) Label(w http.ResponseWriter, r *http.Request) {
	graphID, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	var req service.EvaluationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()
	report, err := h.svc.Label(ctx, graphID, req)
	if err != nil {
		writeServiceError(w, err, "failed to label graph")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
