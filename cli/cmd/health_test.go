// ABOUTME: Tests for the health command
// ABOUTME: Verifies health check output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/markalston/evse-calc/cli/internal/client"
)

func healthyResponse() client.HealthResponse {
	resp := client.HealthResponse{Status: "ok", ReferenceVersion: "2024.1"}
	resp.CacheStatus.Enabled = true
	resp.CacheStatus.Entries = 3
	return resp
}

func TestFormatHealthHuman(t *testing.T) {
	resp := healthyResponse()

	output := formatHealthHuman("http://localhost:8080", &resp)

	if !bytes.Contains([]byte(output), []byte("http://localhost:8080")) {
		t.Error("expected output to contain backend URL")
	}
	if !bytes.Contains([]byte(output), []byte("Reference data:  2024.1")) {
		t.Errorf("expected reference version line, got:\n%s", output)
	}
	if !bytes.Contains([]byte(output), []byte("true (3 entries)")) {
		t.Errorf("expected cache status line, got:\n%s", output)
	}
}

func TestFormatHealthJSON(t *testing.T) {
	resp := healthyResponse()

	output := formatHealthJSON("http://localhost:8080", &resp)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["backend"] != "http://localhost:8080" {
		t.Errorf("expected backend URL in JSON, got %v", parsed["backend"])
	}
	if parsed["reference_version"] != "2024.1" {
		t.Errorf("expected reference version in JSON, got %v", parsed["reference_version"])
	}
}

func TestHealthCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthyResponse())
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("ok")) {
		t.Error("expected ok in output")
	}
}

func TestHealthCommand_ConnectionError(t *testing.T) {
	apiURL = "http://localhost:99999"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Error:")) {
		t.Error("expected error message in output")
	}
}
