// ABOUTME: Tests for primary power, energy and current derivations
// ABOUTME: Covers phase scaling, energy deltas and demand factor capping

package services

import (
	"math"
	"testing"

	"github.com/markalston/evse-calc/backend/models"
	"github.com/stretchr/testify/assert"
)

func TestEffectivePower(t *testing.T) {
	p := models.LoadProfile{RatedPowerKW: 7, Efficiency: 0.92}
	assert.InDelta(t, 6.44, EffectivePower(p), 1e-9)
}

func TestDesignCurrent_SinglePhaseWallbox(t *testing.T) {
	p := models.LoadProfile{RatedPowerKW: 7, Voltage: 230, Phases: 1, Efficiency: 0.92}

	got := DesignCurrent(EffectivePower(p), p.Voltage, p.Phases)

	assert.InDelta(t, 7000*0.92/230, got, 1e-9)
	assert.InDelta(t, 28.0, got, 0.05)
}

func TestDesignCurrent_ThreePhaseDividesBySqrt3(t *testing.T) {
	for _, power := range []float64{3.6, 11, 22, 50} {
		single := DesignCurrent(power, 400, 1)
		three := DesignCurrent(power, 400, 3)
		assert.InDelta(t, single/math.Sqrt(3), three, 1e-9, "power %.1fkW", power)
	}
}

func TestDesignCurrent_ZeroVoltage(t *testing.T) {
	assert.Zero(t, DesignCurrent(7, 0, 1))
}

func TestEnergyRequired(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		current  float64
		target   float64
		want     float64
		wantOK   bool
	}{
		{"normal charge", 60, 20, 80, 36, true},
		{"full charge", 75, 0, 100, 75, true},
		{"target below current", 60, 80, 50, 0, false},
		{"target equals current", 60, 50, 50, 0, false},
		{"zero capacity", 0, 20, 80, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EnergyRequired(tt.capacity, tt.current, tt.target)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestChargeDuration(t *testing.T) {
	assert.InDelta(t, 5.5900, ChargeDuration(36, 6.44), 1e-3)
	assert.Zero(t, ChargeDuration(36, 0))
	assert.Zero(t, ChargeDuration(-1, 7))
}

func TestDemandFactor(t *testing.T) {
	tests := []struct {
		name       string
		diversity  float64
		managed    bool
		limit      float64
		wantFactor float64
		wantCapped bool
	}{
		{"no diversity", 100, false, 0.6, 1.0, false},
		{"diversity without management", 80, false, 0.6, 0.8, false},
		{"management caps high diversity", 100, true, 0.6, 0.6, true},
		{"management leaves low diversity", 50, true, 0.6, 0.5, false},
		{"zero limit disables cap", 100, true, 0, 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor, capped := DemandFactor(tt.diversity, tt.managed, tt.limit)
			assert.InDelta(t, tt.wantFactor, factor, 1e-9)
			assert.Equal(t, tt.wantCapped, capped)
		})
	}
}

func TestFaultVoltage(t *testing.T) {
	assert.InDelta(t, 230.0, FaultVoltage(230, 1), 1e-9)
	assert.InDelta(t, 230.94, FaultVoltage(400, 3), 0.01)
}
