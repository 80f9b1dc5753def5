package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps core errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoWindow):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrBusUnavailable), errors.Is(err, domain.ErrStopped):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
