// ABOUTME: Tests for the reference command
// ABOUTME: Verifies table rendering and YAML export round trip

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/markalston/evse-calc/backend/reference"
)

func TestRunReference_Human(t *testing.T) {
	useOffline(t)

	var buf bytes.Buffer
	code := runReference(context.Background(), &buf)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}

	output := buf.String()
	for _, want := range []string{reference.DefaultVersion, "fast_7kw", "tn-c-s", "4mm² SWA", "Max voltage drop"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestRunReference_YAMLExportLoads(t *testing.T) {
	useOffline(t)
	useOutput(t, "yaml")

	var buf bytes.Buffer
	code := runReference(context.Background(), &buf)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}

	ref, err := reference.Load(&buf)
	if err != nil {
		t.Fatalf("exported tables did not load: %v", err)
	}
	if ref.Version != reference.DefaultVersion {
		t.Errorf("expected version %s, got %s", reference.DefaultVersion, ref.Version)
	}
}
