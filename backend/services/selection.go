// ABOUTME: Cable and protective device selection against the reference catalogue
// ABOUTME: Bounded catalogue scan for capacity and voltage drop, plus device rule lookup

package services

import (
	"log/slog"
	"math"

	"github.com/markalston/evse-calc/backend/models"
)

// VoltageDrop returns the drop in volts along a run carrying currentA.
// Single phase uses the 2× go-and-return multiplier, three phase uses √3.
func VoltageDrop(currentA, lengthM, impedanceMOhmPerM float64, phases int) float64 {
	multiplier := 2.0
	if phases == 3 {
		multiplier = math.Sqrt(3)
	}
	return multiplier * currentA * lengthM * impedanceMOhmPerM / 1000
}

// CableRequest describes the constraints a cable run must satisfy.
// ProtectedCapacityA is the tabulated capacity needed for the cable to be
// protected by the circuit's device (its rating over the derating factor);
// zero means no protection constraint.
type CableRequest struct {
	DeratedCurrentA    float64
	ProtectedCapacityA float64
	OperatingCurrentA  float64
	LengthM            float64
	Phases             int
	Voltage            float64
	MaxVoltageDropPct  float64
}

func (req CableRequest) dropPct(c models.CableSpec) float64 {
	if req.Voltage <= 0 {
		return 0
	}
	return VoltageDrop(req.OperatingCurrentA, req.LengthM, c.ImpedanceMOhmPerM, req.Phases) / req.Voltage * 100
}

// SelectCable scans the ascending catalogue and returns the first entry whose
// capacity covers both the derated current and the protected capacity, and
// whose voltage drop is within the limit. When no entry satisfies all three,
// the largest entry is returned with SpecialistSizingRequired set. The scan
// visits each entry at most once.
func SelectCable(catalogue []models.CableSpec, req CableRequest) models.CableSelection {
	sel := models.CableSelection{Index: -1, CapacityOnlyIndex: -1}
	if len(catalogue) == 0 {
		sel.SpecialistSizingRequired = true
		return sel
	}

	for i, c := range catalogue {
		if c.CapacityA < req.DeratedCurrentA {
			continue
		}
		if sel.CapacityOnlyIndex < 0 {
			sel.CapacityOnlyIndex = i
		}
		dropOK := req.dropPct(c) <= req.MaxVoltageDropPct
		if !dropOK {
			sel.EscalatedForVoltageDrop = true
		}
		if c.CapacityA < req.ProtectedCapacityA {
			sel.EscalatedForProtection = true
			continue
		}
		if !dropOK {
			continue
		}
		sel.Cable = c
		sel.Index = i
		if i != sel.CapacityOnlyIndex {
			slog.Debug("Cable escalated",
				"from", catalogue[sel.CapacityOnlyIndex].Label, "to", c.Label,
				"voltage_drop", sel.EscalatedForVoltageDrop, "protection", sel.EscalatedForProtection)
		}
		return sel
	}

	last := len(catalogue) - 1
	sel.Cable = catalogue[last]
	sel.Index = last
	sel.SpecialistSizingRequired = true
	slog.Debug("Cable catalogue exhausted",
		"derated_current_a", req.DeratedCurrentA,
		"protected_capacity_a", req.ProtectedCapacityA,
		"length_m", req.LengthM)
	return sel
}

// SelectProtectiveDevice applies the first rule whose DC flag matches the
// profile and whose power ceiling covers powerKW, then rates it at the
// smallest standard rating not below currentA. If no rule matches, the last
// rule of the matching DC kind is used.
func SelectProtectiveDevice(ref *models.ReferenceData, profile models.LoadProfile, powerKW, currentA float64) models.ProtectiveDevice {
	var rule *models.ProtectiveDeviceRule
	for i := range ref.ProtectiveDevices {
		r := &ref.ProtectiveDevices[i]
		if r.DC != profile.DC {
			continue
		}
		if powerKW <= r.MaxPowerKW {
			rule = r
			break
		}
		rule = r
	}

	dev := models.ProtectiveDevice{RatingA: StandardRating(ref.StandardRatingsA, currentA)}
	if rule == nil {
		dev.Rule = "none"
		dev.Description = "No protective device rule for this charger type"
		return dev
	}
	dev.Rule = rule.Name
	dev.Description = rule.Description
	dev.Curve = rule.Curve
	dev.RCDSensitivityMA = rule.RCDSensitivityMA
	dev.RCDType = rule.RCDType
	return dev
}

// StandardRating returns the smallest rating not below currentA, or the
// largest rating when currentA exceeds them all.
func StandardRating(ratings []float64, currentA float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	for _, r := range ratings {
		if r >= currentA {
			return r
		}
	}
	return ratings[len(ratings)-1]
}
