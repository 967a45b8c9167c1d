package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

// RespondJSON writes payload as JSON with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
	}
}

// RespondText writes a plain text confirmation message.
func RespondText(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, message); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to write response")
	}
}

// RespondError writes {"error": message}.
func RespondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondJSON(w, r, status, map[string]string{"error": message})
}

// RespondStatus writes a bare status line without a body.
func RespondStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
