// ABOUTME: HTTP handlers for the charge point compliance API
// ABOUTME: Shared handler state, JSON response helpers and request decoding

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/markalston/evse-calc/backend/cache"
	"github.com/markalston/evse-calc/backend/config"
	"github.com/markalston/evse-calc/backend/middleware"
	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/backend/reference"
	"github.com/markalston/evse-calc/backend/services"
)

type Handler struct {
	cfg       *config.Config
	ref       *models.ReferenceData
	install   *services.InstallationCalculator
	charging  *services.ChargingCalculator
	lightning *services.LightningCalculator
	reports   *cache.Cache[models.InstallationReport]
}

// NewHandler builds the API handlers over one frozen set of reference tables.
// A nil ref falls back to the built-in tables and a nil reports cache turns
// memoisation off.
func NewHandler(cfg *config.Config, ref *models.ReferenceData, reports *cache.Cache[models.InstallationReport]) *Handler {
	if ref == nil {
		ref = reference.Default()
	}
	return &Handler{
		cfg:       cfg,
		ref:       ref,
		install:   services.NewInstallationCalculator(ref),
		charging:  services.NewChargingCalculator(ref),
		lightning: services.NewLightningCalculator(ref),
		reports:   reports,
	}
}

// writeJSON encodes v before writing the status so an unencodable value
// becomes a 500 rather than an empty success.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		data, _ = json.Marshal(models.ErrorResponse{
			Error: "Internal server error",
			Code:  http.StatusInternalServerError,
		})
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorWithDetails(w, message, "", code)
}

func (h *Handler) writeErrorWithDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// decodeJSON reads a single JSON object into v, rejecting unknown fields
// and trailing data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after JSON object")
	}
	return nil
}

// decodeRequest decodes the body and writes the matching error response on
// failure. It reports whether the handler should continue.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	err := decodeJSON(r, v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return false
	}
	h.writeErrorWithDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
	return false
}

// writeCalcError maps calculator errors onto HTTP responses. Input problems
// are the caller's fault; anything else is unexpected.
func (h *Handler) writeCalcError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.RequestID(r.Context())
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		slog.Debug("Rejected calculation input", "request_id", requestID, "error", err)
		h.writeErrorWithDetails(w, "Invalid input", err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrUnknownKey):
		slog.Debug("Rejected calculation input", "request_id", requestID, "error", err)
		h.writeErrorWithDetails(w, "Unknown reference key", err.Error(), http.StatusBadRequest)
	default:
		slog.Error("Calculation failed", "request_id", requestID, "error", err)
		h.writeError(w, "Calculation failed", http.StatusInternalServerError)
	}
}
