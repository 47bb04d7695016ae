package web

// errors.go provides unified error responses for the API. Technical
// detail is logged server-side with the request ID; clients get a
// stable code, a human message, and a suggested action.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danquah/gridpoint/internal/core"
	"github.com/danquah/gridpoint/internal/logging"
)

// ErrorResponse is the JSON structure of API error responses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Action string `json:"action,omitempty"`
}

// respondError maps a service error to a user-facing response and logs
// the technical detail.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"code", userMsg.Code,
		"error", err.Error(),
	)

	writeJSON(w, statusCode, ErrorResponse{
		Error:  userMsg.Message,
		Code:   userMsg.Code,
		Action: userMsg.Action,
	})
}

// respondErrorMessage writes a bare error message with no code mapping,
// for middleware-level rejections.
func respondErrorMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeJSON encodes v and writes it with the given status. Encoding
// failures are logged; headers are already gone by then.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
