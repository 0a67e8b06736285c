package handlers

import (
	"net/http"

	"indra/pkg/tracks"
)

// BaselineHandler serves the baseline cyclone track dataset as GeoJSON.
type BaselineHandler struct {
	baseline *tracks.Collection
}

// NewBaselineHandler creates the baseline handler.
func NewBaselineHandler(baseline *tracks.Collection) *BaselineHandler {
	return &BaselineHandler{baseline: baseline}
}

func (h *BaselineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.baseline.GeoJSON())
}
