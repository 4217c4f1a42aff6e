package api

import (
	"encoding/json"
	"net/http"

	"webflow-mirror-layer/internal/domain"

	"github.com/rs/zerolog"
)

// envelope is the uniform JSON response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy onto HTTP status codes. Unclassified
// errors surface as a generic 500 so internals do not leak to clients.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status := domain.StatusOf(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("Request failed")
		message = "internal server error"
	}
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid request body"})
		return false
	}
	return true
}
