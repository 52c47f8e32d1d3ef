package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/format"
	"github.com/Harshitk-cp/caes/internal/service"
	"github.com/google/uuid"
)

type GraphHandler struct {
	graphs    *service.GraphService
	audiences *service.AudienceService
}

func NewGraphHandler(graphs *service.GraphService, audiences *service.AudienceService) *GraphHandler {
	return &GraphHandler{graphs: graphs, audiences: audiences}
}

type graphResponse struct {
	domain.GraphDefinition
	Audiences []domain.AudienceDefinition `json:"audiences,omitempty"`
}

type listGraphsResponse struct {
	Graphs []domain.GraphDefinition `json:"graphs"`
	Count  int                      `json:"count"`
}

// Create accepts a JSON or YAML document. Audiences in the document are
// checked before the graph is stored and created after it.
func (h *GraphHandler) Create(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for i := range doc.Audiences {
		if err := h.audiences.Check(&doc.Audiences[i]); err != nil {
			writeServiceError(w, err, "failed to create graph")
			return
		}
	}

	def := doc.GraphDefinition
	if err := h.graphs.Create(r.Context(), &def); err != nil {
		writeServiceError(w, err, "failed to create graph")
		return
	}

	created := make([]domain.AudienceDefinition, 0, len(doc.Audiences))
	for _, a := range doc.Audiences {
		a.GraphID = def.ID
		if err := h.audiences.Create(r.Context(), &a); err != nil {
			_ = h.graphs.Delete(r.Context(), def.ID)
			writeServiceError(w, err, "failed to create graph")
			return
		}
		created = append(created, a)
	}

	writeJSON(w, http.StatusCreated, graphResponse{GraphDefinition: def, Audiences: created})
}

func (h *GraphHandler) List(w http.ResponseWriter, r *http.Request) {
	graphs, err := h.graphs.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list graphs")
		return
	}
	writeJSON(w, http.StatusOK, listGraphsResponse{Graphs: graphs, Count: len(graphs)})
}

func (h *GraphHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	def, err := h.graphs.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get graph")
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (h *GraphHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	if err := h.graphs.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete graph")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export writes the graph and its stored audiences as a document.
// ?format=json selects JSON; YAML is the default.
func (h *GraphHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	doc, err := h.document(r, id)
	if err != nil {
		writeServiceError(w, err, "failed to export graph")
		return
	}

	ext := format.ExtYAML
	contentType := "application/yaml"
	switch r.URL.Query().Get("format") {
	case "", "yaml", "yml":
	case "json":
		ext, contentType = format.ExtJSON, "application/json"
	default:
		writeError(w, http.StatusBadRequest, "format must be yaml or json")
		return
	}

	data, err := format.Marshal(doc, ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export graph")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *GraphHandler) document(r *http.Request, id uuid.UUID) (*format.Document, error) {
	def, err := h.graphs.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	audiences, err := h.audiences.ListByGraph(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return &format.Document{GraphDefinition: *def, Audiences: audiences}, nil
}

type addStatementsRequest struct {
	Statements []string `json:"statements"`
}

func (h *GraphHandler) AddStatements(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	var req addStatementsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Statements) == 0 {
		writeError(w, http.StatusBadRequest, "statements is required")
		return
	}

	def, err := h.graphs.AddStatements(r.Context(), id, req.Statements)
	if err != nil {
		writeServiceError(w, err, "failed to add statements")
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (h *GraphHandler) AddArgument(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	var req domain.ArgumentDefinition
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	def, err := h.graphs.AddArgument(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, "failed to add argument")
		return
	}
	writeJSON(w, http.StatusCreated, def)
}

type cyclesResponse struct {
	Cycles [][]string `json:"cycles"`
	Count  int        `json:"count"`
}

func (h *GraphHandler) Cycles(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid graph id")
		return
	}
	cycles, err := h.graphs.Cycles(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to compute cycles")
		return
	}
	if cycles == nil {
		cycles = [][]string{}
	}
	writeJSON(w, http.StatusOK, cyclesResponse{Cycles: cycles, Count: len(cycles)})
}
