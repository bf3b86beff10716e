// ABOUTME: Tests for the charge command
// ABOUTME: Verifies session estimates, duration formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/markalston/evse-calc/backend/models"
)

// setChargeOpts replaces the charge flags for one test.
func setChargeOpts(t *testing.T, charger string, capacity, from, to, rate float64) {
	t.Helper()
	saved := chargeOpts
	chargeOpts.inputFile = ""
	chargeOpts.charger = charger
	chargeOpts.capacity = capacity
	chargeOpts.current = from
	chargeOpts.target = to
	chargeOpts.rate = rate
	t.Cleanup(func() { chargeOpts = saved })
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 00m"},
		{335, "5h 35m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.minutes); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestRunCharge_WithCost(t *testing.T) {
	useOffline(t)
	setChargeOpts(t, string(models.ChargerFast7kW), 60, 20, 80, 28)

	var buf bytes.Buffer
	code := runCharge(context.Background(), &buf)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}

	output := buf.String()
	for _, want := range []string{"Charge Session Estimate", "36.0 kWh", "£10.08"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestRunCharge_NothingToCharge(t *testing.T) {
	useOffline(t)
	setChargeOpts(t, string(models.ChargerFast7kW), 60, 80, 50, 0)

	var buf bytes.Buffer
	code := runCharge(context.Background(), &buf)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Nothing to charge") {
		t.Errorf("expected nothing-to-charge notice, got:\n%s", buf.String())
	}
}

func TestRunCharge_JSONOmitsCostWithoutRate(t *testing.T) {
	useOffline(t)
	useOutput(t, "json")
	setChargeOpts(t, string(models.ChargerFast7kW), 60, 20, 80, 0)

	var buf bytes.Buffer
	code := runCharge(context.Background(), &buf)
	if code != exitOK {
		t.Fatalf("expected exit code 0, got %d\n%s", code, buf.String())
	}

	var result models.ChargingResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.CostIncluded {
		t.Error("expected cost to be omitted without a rate")
	}
}

func TestRunCharge_InvalidTarget(t *testing.T) {
	useOffline(t)
	setChargeOpts(t, string(models.ChargerFast7kW), 60, 20, 120, 0)

	var buf bytes.Buffer
	code := runCharge(context.Background(), &buf)
	if code != exitError {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Errorf("expected error output, got:\n%s", buf.String())
	}
}
