package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/Harshitk-cp/caes/internal/domain"
	"github.com/Harshitk-cp/caes/internal/format"
	"github.com/Harshitk-cp/caes/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxBodyBytes = 4 << 20

var errBadBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service and domain errors onto status codes.
// Anything unrecognised is reported as a 500 with fallback as the message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if status := statusFor(err); status != http.StatusInternalServerError {
		writeError(w, status, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, fallback)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGraphNotFound),
		errors.Is(err, service.ErrAudienceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateArgument),
		errors.Is(err, service.ErrAudienceConflict):
		return http.StatusConflict
	case errors.Is(err, errBadBody),
		errors.Is(err, service.ErrGraphName),
		errors.Is(err, service.ErrAudienceName),
		errors.Is(err, service.ErrNoTargets),
		errors.Is(err, service.ErrNoAudience):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownStatement),
		errors.Is(err, domain.ErrUnknownArgument),
		errors.Is(err, domain.ErrUnknownProofStandard),
		errors.Is(err, domain.ErrInvalidStatement),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidWeight),
		errors.Is(err, domain.ErrInconsistentAssumptions),
		errors.Is(err, service.ErrAudienceGraphMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// decodeDocument reads a JSON or YAML argument document. The format comes
// from the Content-Type header, or from the body when the header is absent.
func decodeDocument(w http.ResponseWriter, r *http.Request) (*format.Document, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	doc, err := format.Load(data, documentExt(r.Header.Get("Content-Type")))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	return doc, nil
}

func documentExt(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "application/json":
		return format.ExtJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return format.ExtYAML
	}
	return ""
}

func uuidParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}
