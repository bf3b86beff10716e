// ABOUTME: Charge session calculator
// ABOUTME: Energy, duration and cost of moving a battery between two charge levels

package services

import (
	"math"

	"github.com/markalston/evse-calc/backend/models"
	"github.com/shopspring/decimal"
)

// ChargingCalculator estimates charge sessions against injected reference tables.
type ChargingCalculator struct {
	ref *models.ReferenceData
}

// NewChargingCalculator creates a calculator bound to ref.
func NewChargingCalculator(ref *models.ReferenceData) *ChargingCalculator {
	return &ChargingCalculator{ref: ref}
}

// Calculate estimates a charge session. A target at or below the current
// level, or a zero capacity, produces a non-computable result with zero
// energy and duration rather than an error.
func (c *ChargingCalculator) Calculate(in models.ChargingInput) (models.ChargingResult, error) {
	if err := ValidateChargingInput(c.ref, in); err != nil {
		return models.ChargingResult{}, err
	}
	profile, err := c.ref.LoadProfile(in.Charger)
	if err != nil {
		return models.ChargingResult{}, err
	}

	r := models.ChargingResult{
		Input:            in,
		Profile:          profile,
		EffectivePowerKW: EffectivePower(profile),
	}
	r.DesignCurrentA = DesignCurrent(r.EffectivePowerKW, profile.Voltage, profile.Phases)

	energy, ok := EnergyRequired(in.BatteryCapacityKWh, in.CurrentLevelPct, in.TargetLevelPct)
	r.Computable = ok
	if ok {
		r.EnergyKWh = energy
		r.DurationHours = ChargeDuration(energy, r.EffectivePowerKW)
		r.DurationMinutes = int(math.Round(r.DurationHours * 60))
		if in.RatePencePerKWh > 0 {
			r.CostGBP = SessionCost(energy, in.RatePencePerKWh)
			r.CostIncluded = true
		}
	}

	r.Advisory = models.BuildChargingAdvisory(r, c.ref)
	return r, nil
}

// SessionCost returns the cost in pounds of energyKWh at ratePence per kWh,
// rounded to the nearest penny.
func SessionCost(energyKWh, ratePence float64) float64 {
	pence := decimal.NewFromFloat(energyKWh).Mul(decimal.NewFromFloat(ratePence))
	pounds, _ := pence.Div(decimal.NewFromInt(100)).Round(2).Float64()
	return pounds
}
