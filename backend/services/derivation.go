// ABOUTME: Primary electrical and energy derivations shared by every calculator
// ABOUTME: Pure functions from load profiles and site parameters to power, energy and current

package services

import (
	"math"

	"github.com/markalston/evse-calc/backend/models"
)

// EffectivePower returns the power drawn from the supply after conversion
// losses, in kW.
func EffectivePower(p models.LoadProfile) float64 {
	return p.RatedPowerKW * p.Efficiency
}

// EnergyRequired returns the energy needed to move a battery from currentPct
// to targetPct, in kWh. ok is false when the delta is not positive or the
// capacity is zero, in which case the energy is zero.
func EnergyRequired(capacityKWh, currentPct, targetPct float64) (kwh float64, ok bool) {
	if capacityKWh <= 0 || targetPct <= currentPct {
		return 0, false
	}
	return capacityKWh * (targetPct - currentPct) / 100, true
}

// ChargeDuration returns the hours needed to deliver energyKWh at powerKW.
func ChargeDuration(energyKWh, powerKW float64) float64 {
	if powerKW <= 0 || energyKWh <= 0 {
		return 0
	}
	return energyKWh / powerKW
}

// DesignCurrent returns the line current for a load of powerKW.
// Single phase: P×1000/V. Three phase: P×1000/(V×√3) with V line-to-line.
func DesignCurrent(powerKW, voltage float64, phases int) float64 {
	if voltage <= 0 {
		return 0
	}
	current := powerKW * 1000 / voltage
	if phases == 3 {
		current /= math.Sqrt(3)
	}
	return current
}

// DemandFactor converts a diversity percentage to a multiplier. When load
// management is active the factor is capped; capped reports whether the cap
// was applied.
func DemandFactor(diversityPct float64, loadManaged bool, limit float64) (factor float64, capped bool) {
	factor = diversityPct / 100
	if loadManaged && limit > 0 && factor > limit {
		return limit, true
	}
	return factor, false
}

// FaultVoltage returns the line-to-earth voltage U0 driving an earth fault.
func FaultVoltage(voltage float64, phases int) float64 {
	if phases == 3 {
		return voltage / math.Sqrt(3)
	}
	return voltage
}
