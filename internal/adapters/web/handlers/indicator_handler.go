package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/lcalzada-xor/iwbind/internal/core/ports"
)

// IndicatorHandler exposes the indicator feed
type IndicatorHandler struct {
	FrontEnd ports.FrontEnd
}

// NewIndicatorHandler creates a new IndicatorHandler
func NewIndicatorHandler(fe ports.FrontEnd) *IndicatorHandler {
	return &IndicatorHandler{
		FrontEnd: fe,
	}
}

// HandleList returns every indicator in discovery order
func (h *IndicatorHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.FrontEnd.Indicators()
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []domain.IndicatorStatus{}
	}
	writeJSON(w, http.StatusOK, list)
}
