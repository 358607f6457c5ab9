package handler

import (
	"encoding/json"
	"net/http"

	"flowershop/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps JSON and form request bodies.
const maxBodyBytes = 64 << 10

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and detail.
func writeError(w http.ResponseWriter, status int, code, detail string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", code).Str("detail", detail).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Detail: detail})
}
