// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
	// Calculation routes get the stricter rate limit and a body limit.
	Calculation bool
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & reference data
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/reference", Handler: h.GetReference},

		// Calculations
		{Method: http.MethodPost, Path: "/api/v1/installation/assess", Handler: h.AssessInstallation, Calculation: true},
		{Method: http.MethodPost, Path: "/api/v1/charging/estimate", Handler: h.EstimateCharging, Calculation: true},
		{Method: http.MethodPost, Path: "/api/v1/lightning/assess", Handler: h.AssessLightning, Calculation: true},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
