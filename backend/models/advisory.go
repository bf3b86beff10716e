// ABOUTME: Warning and recommendation synthesis for calculation results
// ABOUTME: Turns pass/fail checks and soft thresholds into ordered, de-duplicated guidance

package models

import "fmt"

// advisoryBuilder accumulates guidance in insertion order, dropping repeats.
type advisoryBuilder struct {
	seen map[string]bool
	adv  Advisory
}

func newAdvisoryBuilder() *advisoryBuilder {
	return &advisoryBuilder{
		seen: make(map[string]bool),
		adv: Advisory{
			Warnings:        []string{},
			Recommendations: []string{},
		},
	}
}

func (b *advisoryBuilder) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if b.seen["w:"+msg] {
		return
	}
	b.seen["w:"+msg] = true
	b.adv.Warnings = append(b.adv.Warnings, msg)
}

func (b *advisoryBuilder) recommend(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if b.seen["r:"+msg] {
		return
	}
	b.seen["r:"+msg] = true
	b.adv.Recommendations = append(b.adv.Recommendations, msg)
}

// BuildAdvisory derives warnings and recommendations from an installation result.
// Warnings are limited to hard failures and conditions that change the safety
// reading of the result; everything else is a recommendation. The result is
// never modified.
func BuildAdvisory(r InstallationResult, ref *ReferenceData) Advisory {
	b := newAdvisoryBuilder()
	s := ref.Safety
	cable := r.Selection.Cable

	// Hard failures
	if r.Selection.SpecialistSizingRequired {
		b.warn("No catalogue cable satisfies %.1fA over %.0fm; specialist sizing required (largest available %s shown)",
			r.DeratedCurrentA, r.Input.CableLengthM, cable.Label)
	}
	if !r.Checks.CapacityOK {
		b.warn("Cable %s capacity %.0fA is below the required %.1fA",
			cable.Label, cable.CapacityA, r.DeratedCurrentA)
	}
	if !r.DeviceCoordinated && r.Device.RatingA > 0 {
		b.warn("Device rating %.0fA exceeds the %.0fA derated capacity of %s; the cable is not protected against overload",
			r.Device.RatingA, r.CableProtectedA, cable.Label)
	}
	if !r.Checks.VoltageDropOK {
		b.warn("Voltage drop %.2f%% (%.1fV) exceeds the %.1f%% limit",
			r.VoltageDropPct, r.VoltageDropV, r.MaxVoltageDropPct)
	}
	if !r.Checks.ZsOK {
		b.warn("Earth fault loop impedance %.2fΩ exceeds the %.2fΩ maximum for %s",
			r.Zs, r.MaxZs, r.Earthing.Label)
	}
	if r.Earthing.Key != EarthingTT && r.Device.RatingA > 0 && r.FaultCurrentA > 0 {
		minFault := s.MinFaultCurrentMultiple * r.Device.RatingA
		if r.FaultCurrentA < minFault {
			b.warn("Prospective earth fault current %.0fA is below %.0fA (%.0f× the %.0fA device rating); disconnection time is not assured without RCD protection",
				r.FaultCurrentA, minFault, s.MinFaultCurrentMultiple, r.Device.RatingA)
		}
	}
	if !r.SupplyHeadroomOK {
		b.warn("Site demand %.1fA exceeds the %.0fA main fuse; load management or a supply upgrade is required",
			r.SiteDemandA, r.Input.MainFuseA)
	}

	// Soft thresholds
	if r.ZeEstimated {
		b.recommend("Ze of %.2fΩ is a typical value for %s, not a measurement; measure Ze on site before energising",
			r.Ze, r.Earthing.Label)
	}
	sized := !r.Selection.SpecialistSizingRequired
	if sized && r.Selection.EscalatedForProtection && r.DeviceCoordinated {
		b.recommend("Cable sized to %s so its %.0fA derated capacity covers the %.0fA device rating",
			cable.Label, r.CableProtectedA, r.Device.RatingA)
	}
	if sized && r.Selection.EscalatedForVoltageDrop && r.Selection.CapacityOnlyIndex >= 0 {
		b.recommend("Cable upsized from %s to %s to keep voltage drop within %.1f%%",
			ref.Cables[r.Selection.CapacityOnlyIndex].Label, cable.Label, r.MaxVoltageDropPct)
	}
	if r.Checks.CapacityOK && cable.CapacityA < r.DeratedCurrentA*(1+s.SoftMarginFraction) {
		if next := r.Selection.Index + 1; next < len(ref.Cables) {
			b.recommend("Cable %s is within %.0f%% of the required %.1fA; consider %s for margin",
				cable.Label, s.SoftMarginFraction*100, r.DeratedCurrentA, ref.Cables[next].Label)
		}
	}
	if r.Checks.VoltageDropOK && s.VoltageDropAdvisoryFraction > 0 &&
		r.VoltageDropPct > r.MaxVoltageDropPct*s.VoltageDropAdvisoryFraction {
		b.recommend("Voltage drop %.2f%% is close to the %.1f%% limit; allow for any extension of the run",
			r.VoltageDropPct, r.MaxVoltageDropPct)
	}
	if s.DNONotifyThresholdKW > 0 && r.TotalDemandKW >= s.DNONotifyThresholdKW {
		b.recommend("Notify the distribution network operator: %.1fkW of charging load meets the %.2fkW notification threshold",
			r.TotalDemandKW, s.DNONotifyThresholdKW)
	}
	if r.DiversityCapped {
		b.recommend("Load management caps simultaneous demand at %.0f%% of connected load; commission the controller before energising",
			r.DemandFactor*100)
	}
	if !r.AmbientInRange {
		b.recommend("Ambient %.0f°C is above the tabulated range; the most severe derating factor (%.2f) was applied and should be verified",
			r.Input.AmbientTempC, r.TemperatureFactor)
	}

	switch r.Input.Location {
	case LocationOutdoor:
		b.recommend("Use weatherproof equipment rated at least IP54 with impact protection for the outdoor installation")
	case LocationUnderground:
		b.recommend("Use steel wire armoured cable buried at least 600mm deep with marker tape above the route")
	}
	if r.Earthing.Key == EarthingTNCS && r.Input.Location != LocationIndoor {
		b.recommend("PME supply: provide open-PEN fault protection in the charge point or a separate TT earth electrode for the outdoor charging point")
	}
	if r.Profile.DC {
		b.recommend("DC charger: confirm the manufacturer's isolation and Type B RCD requirements")
	}
	if r.Selection.SpecialistSizingRequired {
		b.recommend("Consult a specialist designer for parallel cables or a sub-main arrangement")
	}

	return b.adv
}

// BuildChargingAdvisory derives guidance for a charge session estimate.
func BuildChargingAdvisory(r ChargingResult, ref *ReferenceData) Advisory {
	b := newAdvisoryBuilder()

	if !r.Computable {
		if r.Input.BatteryCapacityKWh <= 0 {
			b.recommend("Battery capacity must be greater than zero to estimate a charge session")
		}
		if r.Input.TargetLevelPct <= r.Input.CurrentLevelPct {
			b.recommend("Invalid charge target: target level %.0f%% must be above the current level %.0f%%",
				r.Input.TargetLevelPct, r.Input.CurrentLevelPct)
		}
		return b.adv
	}

	if limit := ref.Safety.LongSessionHours; limit > 0 && r.DurationHours > limit {
		b.recommend("Session of %.1f hours exceeds %.0f hours; a higher power charger would shorten it",
			r.DurationHours, limit)
	}
	if r.Input.TargetLevelPct > 80 && r.Profile.DC {
		b.recommend("Rapid charging slows above 80%%; the estimate assumes full power throughout")
	}
	if !r.CostIncluded {
		b.recommend("Supply an electricity rate to include the session cost")
	}
	return b.adv
}

// BuildLightningAdvisory derives guidance for a lightning risk assessment.
func BuildLightningAdvisory(r LightningResult) Advisory {
	b := newAdvisoryBuilder()

	if r.SpecialistSizingRequired {
		b.warn("Required efficiency %.3f exceeds every protection class; specialist risk assessment required",
			r.RequiredEfficiency)
	}
	if r.ProtectionRequired {
		b.recommend("Install a Class %s lightning protection system with a %.0fm mesh and %d down conductors",
			r.Class, r.MeshSizeM, r.DownConductors)
		b.recommend("Fit surge protective devices at the service entrance")
	} else if r.ExpectedStrikesPerYear > r.TolerableStrikesPerYear/2 {
		b.recommend("Expected strike frequency is within a factor of two of the tolerable limit; review if the structure or its use changes")
	}
	if r.Input.HeightM > 60 {
		b.recommend("Structures above 60m also need protection against side flashes on the upper 20%% of the facade")
	}
	return b.adv
}
