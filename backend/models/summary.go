// ABOUTME: Narrative summaries for calculation results
// ABOUTME: Fills plain-language templates from already computed numbers

package models

import (
	"fmt"
	"strings"
)

// BuildSummary restates an installation result in plain language. It performs
// no calculation and never changes a verdict.
func BuildSummary(r InstallationResult, adv Advisory) Summary {
	return Summary{
		LoadAnalysis:             loadAnalysis(r),
		CableAssessment:          cableAssessment(r),
		ProtectionCompliance:     protectionCompliance(r),
		InstallationRequirements: installationRequirements(r, adv),
	}
}

func loadAnalysis(r InstallationResult) string {
	text := fmt.Sprintf("%d × %s at %.2fkW effective gives %.1fkW connected demand. "+
		"Design current %.1fA, adjusted to %.1fA (design factor applied, demand factor %.2f) "+
		"and derated to %.1fA for %.0f°C ambient (factor %.2f).",
		r.Input.ChargerCount, r.Profile.Label, r.EffectivePowerKW, r.TotalDemandKW,
		r.DesignCurrentA, r.AdjustedCurrentA, r.DemandFactor,
		r.DeratedCurrentA, r.Input.AmbientTempC, r.TemperatureFactor)
	if r.Input.MainFuseA > 0 {
		text += fmt.Sprintf(" Site demand including existing load is %.1fA against a %.0fA main fuse.",
			r.SiteDemandA, r.Input.MainFuseA)
	}
	return text
}

func cableAssessment(r InstallationResult) string {
	cable := r.Selection.Cable
	text := fmt.Sprintf("%s rated %.0fA against %.1fA required over %.0fm. "+
		"Voltage drop %.2fV is %.2f%% of %.0fV (limit %.1f%%).",
		cable.Label, cable.CapacityA, r.DeratedCurrentA, r.Input.CableLengthM,
		r.VoltageDropV, r.VoltageDropPct, r.Profile.Voltage, r.MaxVoltageDropPct)
	if r.Selection.SpecialistSizingRequired {
		text += " No catalogue size meets every constraint; specialist sizing required."
	}
	return text
}

func protectionCompliance(r InstallationResult) string {
	zeSource := "measured"
	if r.ZeEstimated {
		zeSource = "typical"
	}
	verdict := "COMPLIANT"
	if !r.Compliant {
		verdict = "NON-COMPLIANT (failed: " + strings.Join(r.FailedChecks, ", ") + ")"
	}
	return fmt.Sprintf("%s earthing: Zs %.2fΩ (Ze %.2fΩ %s + cable %.3fΩ) against a %.2fΩ maximum. "+
		"Protection: %.0fA %s. Verdict: %s.",
		r.Earthing.Label, r.Zs, r.Ze, zeSource, r.CableLoopImpedance, r.MaxZs,
		r.Device.RatingA, r.Device.Description, verdict)
}

func installationRequirements(r InstallationResult, adv Advisory) string {
	var parts []string
	switch r.Input.Location {
	case LocationOutdoor:
		parts = append(parts, "Outdoor installation with weatherproof equipment.")
	case LocationUnderground:
		parts = append(parts, "Buried cable route with armoured cable.")
	default:
		parts = append(parts, "Indoor installation.")
	}
	parts = append(parts, fmt.Sprintf("RCD protection: %dmA Type %s.", r.Device.RCDSensitivityMA, r.Device.RCDType))
	parts = append(parts, fmt.Sprintf("%d warning(s), %d recommendation(s).", len(adv.Warnings), len(adv.Recommendations)))
	return strings.Join(parts, " ")
}

// BuildLightningSummary restates a lightning assessment in plain language.
func BuildLightningSummary(r LightningResult) string {
	text := fmt.Sprintf("Collection area %.0fm² gives %.4f expected strikes per year against %.4f tolerable.",
		r.CollectionAreaM2, r.ExpectedStrikesPerYear, r.TolerableStrikesPerYear)
	if !r.ProtectionRequired {
		return text + " Lightning protection is not required."
	}
	return text + fmt.Sprintf(" Protection required with efficiency %.3f: Class %s, %.0fm mesh, %d down conductors.",
		r.RequiredEfficiency, r.Class, r.MeshSizeM, r.DownConductors)
}
