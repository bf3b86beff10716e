// ABOUTME: HTTP handlers for installation, charging and lightning calculations
// ABOUTME: Decodes inputs, runs the calculators and memoises installation reports

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/markalston/evse-calc/backend/cache"
	"github.com/markalston/evse-calc/backend/models"
)

// AssessInstallation runs the full installation pipeline and returns the
// report. Identical inputs are served from the report cache.
func (h *Handler) AssessInstallation(w http.ResponseWriter, r *http.Request) {
	var input models.InstallationInput
	if !h.decodeRequest(w, r, &input) {
		return
	}

	report, src, err := h.assess(input)
	if err != nil {
		h.writeCalcError(w, r, err)
		return
	}

	w.Header().Set("X-Cache", cacheHeader(src))
	h.writeJSON(w, http.StatusOK, report)
}

// cacheHeader maps a report's source to the X-Cache value: HIT only for
// reports read from the cache, SHARED for reports computed by a concurrent
// identical request.
func cacheHeader(src cache.Source) string {
	switch src {
	case cache.Stored:
		return "HIT"
	case cache.Shared:
		return "SHARED"
	default:
		return "MISS"
	}
}

func (h *Handler) assess(input models.InstallationInput) (models.InstallationReport, cache.Source, error) {
	if h.reports == nil {
		report, err := h.install.Assess(input)
		return report, cache.Loaded, err
	}

	key, err := installationCacheKey(input)
	if err != nil {
		return models.InstallationReport{}, cache.Loaded, err
	}
	return h.reports.GetOrLoad(key, func() (models.InstallationReport, error) {
		return h.install.Assess(input)
	})
}

// installationCacheKey is the canonical JSON of the input. Struct fields
// marshal in declaration order so equal inputs give equal keys.
func installationCacheKey(input models.InstallationInput) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", err
	}
	return "installation:" + string(data), nil
}

// EstimateCharging returns energy, duration and cost for one charge session.
func (h *Handler) EstimateCharging(w http.ResponseWriter, r *http.Request) {
	var input models.ChargingInput
	if !h.decodeRequest(w, r, &input) {
		return
	}

	result, err := h.charging.Calculate(input)
	if err != nil {
		h.writeCalcError(w, r, err)
		return
	}

	if !result.Computable {
		slog.Debug("Charge session not computable", "current", input.CurrentLevelPct, "target", input.TargetLevelPct)
	}
	h.writeJSON(w, http.StatusOK, result)
}

// AssessLightning returns the lightning protection risk assessment.
func (h *Handler) AssessLightning(w http.ResponseWriter, r *http.Request) {
	var input models.LightningInput
	if !h.decodeRequest(w, r, &input) {
		return
	}

	result, err := h.lightning.Assess(input)
	if err != nil {
		h.writeCalcError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}
