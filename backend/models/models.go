// ABOUTME: Shared API response types
// ABOUTME: JSON-serializable error envelope used by every endpoint

package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
