package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lmorales/espacios-api/internal/domain"
)

// ErrorDetail is the machine-readable error payload inside every non-2xx
// response body.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for all error responses. Fields is populated
// only for validation failures, carrying the engine's ordered field-tagged
// list so clients can render every problem next to the offending input.
type ErrorResponse struct {
	Error  ErrorDetail         `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// writeJSON serializes v as the response body with the given status code.
// Encoding failures at this point cannot be reported to the client anymore,
// so they are logged and dropped.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// notFound writes a 404 with the given human-readable message
// (e.g. "space not found") — the handler is the layer that knows what
// was being looked up.
func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error: ErrorDetail{Code: "not_found", Message: message},
	})
}

// badRequest writes a 422 for a request rejected before reaching the service
// layer (e.g. missing body, malformed id or timestamp).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: message},
	})
}

// serviceError maps a service-layer failure to the right response:
// field-tagged 422 for validation, 409 for a server-detected double booking,
// and a logged generic 500 for anything else. Unknown failures are never
// swallowed and never leak internals to the client.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs *domain.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  ErrorDetail{Code: "validation_error", Message: "validation failed"},
			Fields: verrs.Fields,
		})
		return
	}
	if errors.Is(err, domain.ErrConflict) {
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error: ErrorDetail{Code: "conflict", Message: "already reserved"},
		})
		return
	}

	slog.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{Code: "internal_error", Message: "something went wrong, please retry"},
	})
}
