// ABOUTME: Tests for route table definitions
// ABOUTME: Verifies all routes have required fields and no duplicates

package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	routes := h.Routes()

	if len(routes) == 0 {
		t.Fatal("Routes() returned empty slice")
	}

	for i, route := range routes {
		if route.Method == "" {
			t.Errorf("Route %d: Method is empty", i)
		}
		if route.Path == "" {
			t.Errorf("Route %d: Path is empty", i)
		}
		if route.Handler == nil {
			t.Errorf("Route %d: Handler is nil", i)
		}
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Route %d: Path %q must start with /api/v1/", i, route.Path)
		}
	}
}

func TestRoutes_NoDuplicatePaths(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	routes := h.Routes()

	seen := make(map[string]bool)
	for _, route := range routes {
		key := route.Method + " " + route.Path
		if seen[key] {
			t.Errorf("Duplicate route: %s", key)
		}
		seen[key] = true
	}
}

func TestRoutes_ExpectedEndpoints(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	routes := h.Routes()

	expected := map[string]bool{
		"GET /api/v1/health":               false,
		"GET /api/v1/reference":            false,
		"POST /api/v1/installation/assess": false,
		"POST /api/v1/charging/estimate":   false,
		"POST /api/v1/lightning/assess":    false,
		"GET /api/v1/openapi.yaml":         false,
	}

	for _, route := range routes {
		key := route.Method + " " + route.Path
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}

	for key, found := range expected {
		if !found {
			t.Errorf("Missing expected route: %s", key)
		}
	}
}

func TestRoutes_CalculationRoutesArePOST(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	for _, route := range h.Routes() {
		if route.Calculation && route.Method != http.MethodPost {
			t.Errorf("Calculation route %s must be POST, got %s", route.Path, route.Method)
		}
		if !route.Calculation && route.Method != http.MethodGet {
			t.Errorf("Read-only route %s must be GET, got %s", route.Path, route.Method)
		}
	}
}
