package web

// errors.go provides unified error and response handling for the web
// layer. Technical errors are logged server-side with the request ID;
// clients get a small JSON envelope.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/tfgate/guarantees/internal/core"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse carries per-field validation messages, keyed by
// canonical field name.
type ValidationResponse struct {
	Errors core.FieldErrors `json:"errors"`
}

// respondError maps an internal error onto an HTTP response. Sentinel
// errors from the core get their proper status; everything else is a
// 500 with the details kept server-side.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		slog.Error("request error",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err.Error(),
			"request_id", middleware.GetReqID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// respondValidation writes field errors as a 422 response.
func respondValidation(w http.ResponseWriter, fe core.FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Errors: fe})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
