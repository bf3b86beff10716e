// ABOUTME: Cross-origin access for browser clients of the calculator API
// ABOUTME: Echoes listed origins, exposes cache and throttling headers, answers preflight

package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// Preflight results may be cached by the browser for this many seconds.
const corsMaxAge = "600"

var (
	corsAllowedHeaders = strings.Join([]string{"Content-Type", "X-Request-ID"}, ", ")
	corsExposedHeaders = strings.Join([]string{
		"X-Request-ID", "X-Cache", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining",
	}, ", ")
)

// CORS allows cross-origin calls from the listed origins. A "*" entry allows
// any origin; the request's own origin is still echoed back. With an empty
// list no CORS headers are written. OPTIONS requests get 204 and never reach
// the handler.
func CORS(allowedOrigins []string) Middleware {
	anyOrigin := slices.Contains(allowedOrigins, "*")
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (anyOrigin || slices.Contains(allowedOrigins, origin)) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", corsAllowedHeaders)
				h.Set("Access-Control-Expose-Headers", corsExposedHeaders)
				h.Set("Access-Control-Max-Age", corsMaxAge)
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next(w, r)
		}
	}
}
