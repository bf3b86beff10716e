// ABOUTME: Tests for the installation wizard
// ABOUTME: Validates input collection and field validation

package wizard

import (
	"testing"

	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/backend/reference"
	"github.com/markalston/evse-calc/backend/services"
)

func TestWizardDefaults(t *testing.T) {
	w := New(reference.Default())

	in, err := w.Input()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Charger != models.ChargerFast7kW {
		t.Errorf("expected default charger fast_7kw, got %s", in.Charger)
	}
	if in.ChargerCount != 1 {
		t.Errorf("expected 1 charger, got %d", in.ChargerCount)
	}
	if in.MeasuredZe != nil {
		t.Error("expected no measured Ze by default")
	}

	// Defaults must be a valid assessment as they stand
	if err := services.ValidateInstallationInput(reference.Default(), in); err != nil {
		t.Errorf("expected default input to validate, got %v", err)
	}
}

func TestWizardInput_ParsesFields(t *testing.T) {
	w := New(reference.Default())
	w.charger = string(models.ChargerFast22kW)
	w.count = " 4 "
	w.earthing = string(models.EarthingTT)
	w.measuredZe = "21.5"
	w.cableLength = "35.5"
	w.ambient = "-5"
	w.diversity = "70"
	w.loadManagement = true

	in, err := w.Input()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.ChargerCount != 4 {
		t.Errorf("expected 4 chargers, got %d", in.ChargerCount)
	}
	if in.MeasuredZe == nil || *in.MeasuredZe != 21.5 {
		t.Errorf("expected measured Ze 21.5, got %v", in.MeasuredZe)
	}
	if in.CableLengthM != 35.5 || in.AmbientTempC != -5 || in.Diversity() != 70 {
		t.Errorf("unexpected parsed values: %+v", in)
	}
	if !in.LoadManagement {
		t.Error("expected load management")
	}
}

func TestWizardInput_BadNumber(t *testing.T) {
	w := New(reference.Default())
	w.cableLength = "twenty"

	if _, err := w.Input(); err == nil {
		t.Error("expected error for non-numeric cable length")
	}
}

func TestWizardOptionsFollowReferenceTables(t *testing.T) {
	ref := reference.Default()
	w := New(ref)

	if got := len(w.chargerOptions()); got != len(ref.LoadProfiles) {
		t.Errorf("expected %d charger options, got %d", len(ref.LoadProfiles), got)
	}
	if got := len(w.earthingOptions()); got != len(ref.EarthingSystems) {
		t.Errorf("expected %d earthing options, got %d", len(ref.EarthingSystems), got)
	}
	if w.Form() == nil {
		t.Error("expected a form")
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr bool
	}{
		{"positive int ok", validatePositiveInt, "3", false},
		{"positive int zero", validatePositiveInt, "0", true},
		{"positive int text", validatePositiveInt, "abc", true},
		{"non-negative ok", validateNonNegative, "0", false},
		{"non-negative below", validateNonNegative, "-1", true},
		{"optional blank", validateOptionalNonNegative, "  ", false},
		{"optional bad", validateOptionalNonNegative, "-0.2", true},
		{"diversity ok", validateDiversity, "100", false},
		{"diversity over", validateDiversity, "101", true},
		{"diversity zero", validateDiversity, "0", true},
		{"number negative", validateNumber, "-10", false},
		{"number text", validateNumber, "warm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("got error %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
