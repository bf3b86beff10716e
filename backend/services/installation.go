// ABOUTME: Installation calculator for EV charge point circuits
// ABOUTME: Derives currents, selects cable and protection, evaluates Zs and voltage drop compliance

package services

import (
	"log/slog"

	"github.com/markalston/evse-calc/backend/models"
)

// InstallationCalculator sizes and checks a charge point circuit against
// injected reference tables. It holds no mutable state and is safe for
// concurrent use.
type InstallationCalculator struct {
	ref *models.ReferenceData
}

// NewInstallationCalculator creates a calculator bound to ref. The tables must
// already have passed Validate and must not be modified afterwards.
func NewInstallationCalculator(ref *models.ReferenceData) *InstallationCalculator {
	return &InstallationCalculator{ref: ref}
}

// Reference returns the tables the calculator was built with.
func (c *InstallationCalculator) Reference() *models.ReferenceData {
	return c.ref
}

// Calculate produces the numeric result for one installation. Errors are
// returned only for invalid input; a non-compliant circuit is a result.
func (c *InstallationCalculator) Calculate(in models.InstallationInput) (models.InstallationResult, error) {
	if err := ValidateInstallationInput(c.ref, in); err != nil {
		return models.InstallationResult{}, err
	}
	in = in.WithDefaults()

	profile, err := c.ref.LoadProfile(in.Charger)
	if err != nil {
		return models.InstallationResult{}, err
	}
	earthing, err := c.ref.EarthingSystem(in.Earthing)
	if err != nil {
		return models.InstallationResult{}, err
	}
	safety := c.ref.Safety

	r := models.InstallationResult{
		Input:             in,
		Profile:           profile,
		Earthing:          earthing,
		MaxVoltageDropPct: safety.MaxVoltageDropPct,
		MaxZs:             earthing.MaxZs,
	}

	// Load
	r.EffectivePowerKW = EffectivePower(profile)
	r.TotalDemandKW = r.EffectivePowerKW * float64(in.ChargerCount)
	r.DesignCurrentA = DesignCurrent(r.TotalDemandKW, profile.Voltage, profile.Phases)
	r.DemandFactor, r.DiversityCapped = DemandFactor(in.Diversity(), in.LoadManagement, safety.LoadManagedDiversityCap)
	r.AdjustedCurrentA = r.DesignCurrentA * safety.DesignCurrentFactor * r.DemandFactor
	r.TemperatureFactor, r.AmbientInRange = c.ref.TemperatureFactor(in.AmbientTempC)
	r.DeratedCurrentA = r.AdjustedCurrentA / r.TemperatureFactor

	// Protection. The cable must carry the device rating after derating.
	r.Device = SelectProtectiveDevice(c.ref, profile, profile.RatedPowerKW*float64(in.ChargerCount), r.AdjustedCurrentA)

	// Cable
	r.Selection = SelectCable(c.ref.Cables, CableRequest{
		DeratedCurrentA:    r.DeratedCurrentA,
		ProtectedCapacityA: r.Device.RatingA / r.TemperatureFactor,
		OperatingCurrentA:  r.AdjustedCurrentA,
		LengthM:            in.CableLengthM,
		Phases:             profile.Phases,
		Voltage:            profile.Voltage,
		MaxVoltageDropPct:  safety.MaxVoltageDropPct,
	})
	cable := r.Selection.Cable
	r.VoltageDropV = VoltageDrop(r.AdjustedCurrentA, in.CableLengthM, cable.ImpedanceMOhmPerM, profile.Phases)
	r.VoltageDropPct = r.VoltageDropV / profile.Voltage * 100
	r.CableProtectedA = cable.CapacityA * r.TemperatureFactor
	r.DeviceCoordinated = r.Device.RatingA <= r.CableProtectedA

	// Earth fault loop
	if in.MeasuredZe != nil {
		r.Ze = *in.MeasuredZe
	} else {
		r.Ze = earthing.EstimatedZe
		r.ZeEstimated = true
	}
	r.CableLoopImpedance = cable.LoopImpedance(in.CableLengthM)
	r.Zs = r.Ze + r.CableLoopImpedance
	if r.Zs > 0 {
		r.FaultCurrentA = FaultVoltage(profile.Voltage, profile.Phases) / r.Zs
	}

	// Supply headroom is informational and does not affect the verdict.
	r.SiteDemandA = in.ExistingLoadA + r.AdjustedCurrentA
	r.SupplyHeadroomOK = in.MainFuseA <= 0 || r.SiteDemandA <= in.MainFuseA

	r.Checks = models.ComplianceChecks{
		CapacityOK:    cable.CapacityA >= r.DeratedCurrentA,
		VoltageDropOK: r.VoltageDropPct <= safety.MaxVoltageDropPct,
		ZsOK:          r.Zs <= earthing.MaxZs,
	}
	r.Compliant = r.Checks.Compliant()
	r.FailedChecks = r.Checks.Failed()

	slog.Debug("Installation calculated",
		"charger", in.Charger,
		"count", in.ChargerCount,
		"cable", cable.Label,
		"zs", r.Zs,
		"compliant", r.Compliant)

	return r, nil
}

// Assess calculates an installation and attaches advisories and the
// narrative summary.
func (c *InstallationCalculator) Assess(in models.InstallationInput) (models.InstallationReport, error) {
	result, err := c.Calculate(in)
	if err != nil {
		return models.InstallationReport{}, err
	}
	adv := models.BuildAdvisory(result, c.ref)
	return models.InstallationReport{
		Result:   result,
		Advisory: adv,
		Summary:  models.BuildSummary(result, adv),
	}, nil
}
