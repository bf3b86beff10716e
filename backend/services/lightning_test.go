// ABOUTME: Tests for the lightning protection risk assessment
// ABOUTME: Covers collection area, class selection, specialist escalation and down conductors

package services

import (
	"errors"
	"math"
	"testing"

	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/backend/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionArea(t *testing.T) {
	got := CollectionArea(10, 10, 8)
	assert.InDelta(t, 100+960+math.Pi*576, got, 1e-9)
}

func TestDownConductors(t *testing.T) {
	assert.Equal(t, 2, DownConductors(10, 20))
	assert.Equal(t, 6, DownConductors(120, 20))
	assert.Equal(t, 7, DownConductors(121, 20))
	assert.Equal(t, 2, DownConductors(100, 0))
}

func TestLightningCalculator_Assess(t *testing.T) {
	calc := NewLightningCalculator(reference.Default())

	tests := []struct {
		name               string
		input              models.LightningInput
		wantRequired       bool
		wantClass          string
		wantDownConductors int
		wantSpecialist     bool
	}{
		{
			name:         "detached house",
			input:        models.LightningInput{LengthM: 10, WidthM: 10, HeightM: 8, GroundFlashDensity: 1, Location: models.LocationIsolated, Structure: models.StructureDomestic},
			wantRequired: false,
		},
		{
			name:               "warehouse needs class IV",
			input:              models.LightningInput{LengthM: 40, WidthM: 20, HeightM: 10, GroundFlashDensity: 1, Location: models.LocationIsolated, Structure: models.StructureCommercial},
			wantRequired:       true,
			wantClass:          "IV",
			wantDownConductors: 6,
		},
		{
			name:               "school needs class II",
			input:              models.LightningInput{LengthM: 30, WidthM: 20, HeightM: 10, GroundFlashDensity: 2, Location: models.LocationIsolated, Structure: models.StructurePublic},
			wantRequired:       true,
			wantClass:          "II",
			wantDownConductors: 10,
		},
		{
			name:               "hilltop fuel store beyond class I",
			input:              models.LightningInput{LengthM: 100, WidthM: 100, HeightM: 30, GroundFlashDensity: 5, Location: models.LocationHilltop, Structure: models.StructureHazardous},
			wantRequired:       true,
			wantClass:          "I",
			wantDownConductors: 40,
			wantSpecialist:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := calc.Assess(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRequired, r.ProtectionRequired)
			assert.Equal(t, tt.wantClass, r.Class)
			assert.Equal(t, tt.wantDownConductors, r.DownConductors)
			assert.Equal(t, tt.wantSpecialist, r.SpecialistSizingRequired)
			assert.NotEmpty(t, r.Summary)
			if tt.wantRequired {
				assert.InDelta(t, 1-r.TolerableStrikesPerYear/r.ExpectedStrikesPerYear, r.RequiredEfficiency, 1e-12)
			} else {
				assert.Zero(t, r.RequiredEfficiency)
			}
			if tt.wantSpecialist {
				assert.NotEmpty(t, r.Advisory.Warnings)
			}
		})
	}
}

func TestLightningCalculator_LocationScalesStrikes(t *testing.T) {
	calc := NewLightningCalculator(reference.Default())
	in := models.LightningInput{LengthM: 20, WidthM: 10, HeightM: 6, GroundFlashDensity: 1, Structure: models.StructureDomestic}

	in.Location = models.LocationIsolated
	isolated, err := calc.Assess(in)
	require.NoError(t, err)

	in.Location = models.LocationHilltop
	hilltop, err := calc.Assess(in)
	require.NoError(t, err)

	assert.InDelta(t, 2*isolated.ExpectedStrikesPerYear, hilltop.ExpectedStrikesPerYear, 1e-12)
}

func TestLightningCalculator_InvalidInput(t *testing.T) {
	calc := NewLightningCalculator(reference.Default())

	_, err := calc.Assess(models.LightningInput{LengthM: 0, WidthM: 10, HeightM: 5, GroundFlashDensity: 1, Location: models.LocationIsolated, Structure: models.StructureDomestic})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = calc.Assess(models.LightningInput{LengthM: 10, WidthM: 10, HeightM: 5, GroundFlashDensity: 1, Location: "valley", Structure: models.StructureDomestic})
	assert.True(t, errors.Is(err, models.ErrUnknownKey))

	_, err = calc.Assess(models.LightningInput{LengthM: 10, WidthM: 10, HeightM: 5, GroundFlashDensity: 1, Location: models.LocationIsolated, Structure: "castle"})
	assert.True(t, errors.Is(err, models.ErrUnknownKey))
}
