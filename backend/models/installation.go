// ABOUTME: Data models for EV charge point installation sizing and compliance
// ABOUTME: Input parameters, numeric results, per-check verdicts and the full report

package models

// InstallationInput is the full set of site and load parameters for one assessment.
type InstallationInput struct {
	Charger        ChargerType  `json:"charger" yaml:"charger" validate:"required"`
	ChargerCount   int          `json:"charger_count" yaml:"charger_count" validate:"gte=0,lte=100"`
	Earthing       EarthingType `json:"earthing" yaml:"earthing" validate:"required"`
	MeasuredZe     *float64     `json:"measured_ze,omitempty" yaml:"measured_ze,omitempty" validate:"omitempty,gte=0,lte=1000"`
	CableLengthM   float64      `json:"cable_length_m" yaml:"cable_length_m" validate:"gte=0,lte=1000"`
	AmbientTempC   float64      `json:"ambient_temp_c" yaml:"ambient_temp_c" validate:"gte=-40,lte=80"`
	Location       Location     `json:"location" yaml:"location" validate:"required,oneof=indoor outdoor underground"`
	DiversityPct   *float64     `json:"diversity_pct,omitempty" yaml:"diversity_pct,omitempty" validate:"omitempty,gt=0,lte=100"`
	LoadManagement bool         `json:"load_management" yaml:"load_management"`
	ExistingLoadA  float64      `json:"existing_load_a" yaml:"existing_load_a" validate:"gte=0,lte=10000"`
	MainFuseA      float64      `json:"main_fuse_a" yaml:"main_fuse_a" validate:"gte=0,lte=10000"`
}

// WithDefaults fills fields that were not supplied: a zero charger count is
// one charger and a missing diversity is no diversity (100%).
func (in InstallationInput) WithDefaults() InstallationInput {
	if in.ChargerCount == 0 {
		in.ChargerCount = 1
	}
	if in.DiversityPct == nil {
		full := 100.0
		in.DiversityPct = &full
	}
	return in
}

// Diversity returns the diversity percentage, 100 when not supplied.
func (in InstallationInput) Diversity() float64 {
	if in.DiversityPct == nil {
		return 100
	}
	return *in.DiversityPct
}

// CableSelection records the outcome of the catalogue scan.
type CableSelection struct {
	Cable                    CableSpec `json:"cable" yaml:"cable"`
	Index                    int       `json:"index" yaml:"index"`
	CapacityOnlyIndex        int       `json:"capacity_only_index" yaml:"capacity_only_index"`
	EscalatedForVoltageDrop  bool      `json:"escalated_for_voltage_drop" yaml:"escalated_for_voltage_drop"`
	EscalatedForProtection   bool      `json:"escalated_for_protection" yaml:"escalated_for_protection"`
	SpecialistSizingRequired bool      `json:"specialist_sizing_required" yaml:"specialist_sizing_required"`
}

// ProtectiveDevice is the protective device chosen for the circuit.
type ProtectiveDevice struct {
	Rule             string  `json:"rule" yaml:"rule"`
	Description      string  `json:"description" yaml:"description"`
	RatingA          float64 `json:"rating_a" yaml:"rating_a"`
	Curve            string  `json:"curve" yaml:"curve"`
	RCDSensitivityMA int     `json:"rcd_sensitivity_ma" yaml:"rcd_sensitivity_ma"`
	RCDType          string  `json:"rcd_type" yaml:"rcd_type"`
}

// Check names, in the order they are reported.
const (
	CheckCapacity       = "capacity"
	CheckVoltageDrop    = "voltage_drop"
	CheckEarthFaultLoop = "earth_fault_loop"
)

// ComplianceChecks holds the individual sub-check outcomes.
type ComplianceChecks struct {
	CapacityOK    bool `json:"capacity_ok" yaml:"capacity_ok"`
	VoltageDropOK bool `json:"voltage_drop_ok" yaml:"voltage_drop_ok"`
	ZsOK          bool `json:"zs_ok" yaml:"zs_ok"`
}

// Compliant is the conjunction of every sub-check.
func (c ComplianceChecks) Compliant() bool {
	return c.CapacityOK && c.VoltageDropOK && c.ZsOK
}

// Failed lists the names of failing sub-checks in report order.
func (c ComplianceChecks) Failed() []string {
	failed := []string{}
	if !c.CapacityOK {
		failed = append(failed, CheckCapacity)
	}
	if !c.VoltageDropOK {
		failed = append(failed, CheckVoltageDrop)
	}
	if !c.ZsOK {
		failed = append(failed, CheckEarthFaultLoop)
	}
	return failed
}

// InstallationResult holds every derived quantity and verdict. It carries no
// presentation text.
type InstallationResult struct {
	Input    InstallationInput `json:"input" yaml:"input"`
	Profile  LoadProfile       `json:"profile" yaml:"profile"`
	Earthing EarthingSystem    `json:"earthing" yaml:"earthing"`

	EffectivePowerKW  float64 `json:"effective_power_kw" yaml:"effective_power_kw"`
	TotalDemandKW     float64 `json:"total_demand_kw" yaml:"total_demand_kw"`
	DesignCurrentA    float64 `json:"design_current_a" yaml:"design_current_a"`
	DemandFactor      float64 `json:"demand_factor" yaml:"demand_factor"`
	DiversityCapped   bool    `json:"diversity_capped" yaml:"diversity_capped"`
	AdjustedCurrentA  float64 `json:"adjusted_current_a" yaml:"adjusted_current_a"`
	TemperatureFactor float64 `json:"temperature_factor" yaml:"temperature_factor"`
	AmbientInRange    bool    `json:"ambient_in_range" yaml:"ambient_in_range"`
	DeratedCurrentA   float64 `json:"derated_current_a" yaml:"derated_current_a"`

	Selection         CableSelection `json:"selection" yaml:"selection"`
	VoltageDropV      float64        `json:"voltage_drop_v" yaml:"voltage_drop_v"`
	VoltageDropPct    float64        `json:"voltage_drop_pct" yaml:"voltage_drop_pct"`
	MaxVoltageDropPct float64        `json:"max_voltage_drop_pct" yaml:"max_voltage_drop_pct"`

	Ze                 float64 `json:"ze" yaml:"ze"`
	ZeEstimated        bool    `json:"ze_estimated" yaml:"ze_estimated"`
	CableLoopImpedance float64 `json:"cable_loop_impedance" yaml:"cable_loop_impedance"`
	Zs                 float64 `json:"zs" yaml:"zs"`
	MaxZs              float64 `json:"max_zs" yaml:"max_zs"`
	FaultCurrentA      float64 `json:"fault_current_a" yaml:"fault_current_a"`

	Device ProtectiveDevice `json:"device" yaml:"device"`

	// CableProtectedA is the selected cable's capacity after derating (Iz).
	// DeviceCoordinated holds when the device rating does not exceed it.
	CableProtectedA   float64 `json:"cable_protected_a" yaml:"cable_protected_a"`
	DeviceCoordinated bool    `json:"device_coordinated" yaml:"device_coordinated"`

	SiteDemandA      float64 `json:"site_demand_a" yaml:"site_demand_a"`
	SupplyHeadroomOK bool    `json:"supply_headroom_ok" yaml:"supply_headroom_ok"`

	Checks       ComplianceChecks `json:"checks" yaml:"checks"`
	Compliant    bool             `json:"compliant" yaml:"compliant"`
	FailedChecks []string         `json:"failed_checks" yaml:"failed_checks"`
}

// Advisory holds ordered, de-duplicated guidance derived from a result.
type Advisory struct {
	Warnings        []string `json:"warnings" yaml:"warnings"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// Summary holds plain-language restatements of the numeric findings.
type Summary struct {
	LoadAnalysis             string `json:"load_analysis" yaml:"load_analysis"`
	CableAssessment          string `json:"cable_assessment" yaml:"cable_assessment"`
	ProtectionCompliance     string `json:"protection_compliance" yaml:"protection_compliance"`
	InstallationRequirements string `json:"installation_requirements" yaml:"installation_requirements"`
}

// InstallationReport is the complete response for one assessment.
type InstallationReport struct {
	Result   InstallationResult `json:"result" yaml:"result"`
	Advisory Advisory           `json:"advisory" yaml:"advisory"`
	Summary  Summary            `json:"summary" yaml:"summary"`
}
