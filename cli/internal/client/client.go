// ABOUTME: HTTP client for the EVSE installation calculator API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/markalston/evse-calc/backend/models"
)

// Engine runs calculations either against the backend or in-process.
type Engine interface {
	AssessInstallation(ctx context.Context, input models.InstallationInput) (*models.InstallationReport, error)
	EstimateCharging(ctx context.Context, input models.ChargingInput) (*models.ChargingResult, error)
	AssessLightning(ctx context.Context, input models.LightningInput) (*models.LightningResult, error)
	Reference(ctx context.Context) (*models.ReferenceData, error)
}

// ErrRejected marks a request the backend refused as invalid input.
var ErrRejected = errors.New("rejected")

// Client is the API client for the calculator backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status           string      `json:"status"`
	ReferenceVersion string      `json:"reference_version"`
	CacheStatus      CacheStatus `json:"cache_status"`
}

// CacheStatus represents cache state in health response
type CacheStatus struct {
	Enabled bool `json:"enabled"`
	Entries int  `json:"entries"`
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Reference calls GET /api/v1/reference
func (c *Client) Reference(ctx context.Context) (*models.ReferenceData, error) {
	var ref models.ReferenceData
	if err := c.do(ctx, http.MethodGet, "/api/v1/reference", nil, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// AssessInstallation calls POST /api/v1/installation/assess
func (c *Client) AssessInstallation(ctx context.Context, input models.InstallationInput) (*models.InstallationReport, error) {
	var report models.InstallationReport
	if err := c.do(ctx, http.MethodPost, "/api/v1/installation/assess", input, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// EstimateCharging calls POST /api/v1/charging/estimate
func (c *Client) EstimateCharging(ctx context.Context, input models.ChargingInput) (*models.ChargingResult, error) {
	var result models.ChargingResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/charging/estimate", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AssessLightning calls POST /api/v1/lightning/assess
func (c *Client) AssessLightning(ctx context.Context, input models.LightningInput) (*models.LightningResult, error) {
	var result models.LightningResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/lightning/assess", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do sends body as JSON when non-nil and decodes a 200 response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses. 400s wrap ErrRejected.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	msg := errResp.Error
	if errResp.Details != "" {
		msg += ": " + errResp.Details
	}
	if resp.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return fmt.Errorf("backend error: %s", msg)
}
