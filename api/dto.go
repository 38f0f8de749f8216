/*
dto.go - Response envelope and request decoding

PURPOSE:
  Every endpoint answers with the same envelope:

    {"success": true,  "data": ...}
    {"success": false, "error": "message"}

  so the dashboard branches on one field. Status codes carry the same
  information for non-browser clients: 400 validation, 404 absent,
  500 storage failure.

SEE ALSO:
  - handlers.go: Handler implementations using these helpers
*/
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/warp/staffdesk/staff"
)

// apiResponse is the uniform wire envelope.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

// writeNotFound answers the not-found sentinel (nil record / false delete).
func writeNotFound(w http.ResponseWriter, what string) {
	writeError(w, http.StatusNotFound, what+" not found")
}

// writeFacadeError maps a facade failure onto the status contract:
// validation errors pass their message through as 400; anything else is a
// 500 with a generic message, the storage detail stays in the log.
func writeFacadeError(w http.ResponseWriter, r *http.Request, err error) {
	if staff.IsValidation(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// decodeBody parses the JSON request body into v. Answers 400 and returns
// false when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
