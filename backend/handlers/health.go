// ABOUTME: HTTP handlers for health and reference table endpoints
// ABOUTME: Reports service status and exposes the active reference data read-only

package handlers

import (
	"net/http"

	"github.com/markalston/evse-calc/backend/reference"
)

// Health returns API status with the active reference data version and
// report cache state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":            "ok",
		"reference_version": h.ref.Version,
		"cache_status": map[string]any{
			"enabled": h.reports != nil && h.reports.TTL() > 0,
			"entries": h.cacheEntries(),
		},
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) cacheEntries() int {
	if h.reports == nil {
		return 0
	}
	return h.reports.Len()
}

// GetReference returns the reference tables the calculators run against.
// ?format=yaml returns the same document in the loader's file format.
func (h *Handler) GetReference(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("format") {
	case "", "json":
		h.writeJSON(w, http.StatusOK, h.ref)
	case "yaml":
		data, err := reference.Marshal(h.ref)
		if err != nil {
			h.writeError(w, "Failed to encode reference data", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	default:
		h.writeError(w, "format must be json or yaml", http.StatusBadRequest)
	}
}
