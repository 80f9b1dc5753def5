package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// WindowHandler exposes the window lifecycle
type WindowHandler struct {
	FrontEnd ports.FrontEnd
}

// NewWindowHandler creates a new WindowHandler
func NewWindowHandler(fe ports.FrontEnd) *WindowHandler {
	return &WindowHandler{
		FrontEnd: fe,
	}
}

// HandleGet returns the snapshot of the active window
func (h *WindowHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := h.FrontEnd.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleOpen opens a window, replacing the active one
func (h *WindowHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	snap, err := h.FrontEnd.OpenWindow()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// HandleClose closes the active window
func (h *WindowHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	if err := h.FrontEnd.CloseWindow(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleText returns the plain text rendering of the active window
func (h *WindowHandler) HandleText(w http.ResponseWriter, r *http.Request) {
	text, err := h.FrontEnd.RenderWindow()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text + "\n"))
}
