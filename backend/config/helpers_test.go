// ABOUTME: Test helpers for config tests
// ABOUTME: Runs each test against an empty environment and no .env file

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withCleanEnv empties the environment, points ENV_FILE at a missing file and
// applies extra. The returned func restores the previous environment:
//
//	t.Cleanup(withCleanEnv(t, map[string]string{"CACHE_TTL": "60"}))
func withCleanEnv(t *testing.T, extra map[string]string) func() {
	t.Helper()

	saved := os.Environ()
	os.Clearenv()
	os.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	for k, v := range extra {
		os.Setenv(k, v)
	}

	return func() {
		os.Clearenv()
		for _, kv := range saved {
			if k, v, ok := strings.Cut(kv, "="); ok {
				os.Setenv(k, v)
			}
		}
	}
}
