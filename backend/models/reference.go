// ABOUTME: Reference data tables for installation compliance calculations
// ABOUTME: Load profiles, earthing systems, cable catalogue, device rules and safety factors

package models

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a lookup key is not part of the reference tables.
var ErrUnknownKey = errors.New("unknown reference key")

// ChargerType identifies a load profile in the reference tables
type ChargerType string

const (
	ChargerSlow3kW    ChargerType = "slow_3kw"
	ChargerFast7kW    ChargerType = "fast_7kw"
	ChargerFast11kW   ChargerType = "fast_11kw"
	ChargerFast22kW   ChargerType = "fast_22kw"
	ChargerRapid50kW  ChargerType = "rapid_50kw"
	ChargerUltra150kW ChargerType = "ultra_150kw"
)

// EarthingType identifies a supply earthing arrangement
type EarthingType string

const (
	EarthingTNCS EarthingType = "tn-c-s"
	EarthingTNS  EarthingType = "tn-s"
	EarthingTT   EarthingType = "tt"
)

// Location describes where the charge point and cable run are installed
type Location string

const (
	LocationIndoor      Location = "indoor"
	LocationOutdoor     Location = "outdoor"
	LocationUnderground Location = "underground"
)

// LoadProfile describes one power-consuming device class.
type LoadProfile struct {
	Key          ChargerType `json:"key" yaml:"key"`
	Label        string      `json:"label" yaml:"label"`
	RatedPowerKW float64     `json:"rated_power_kw" yaml:"rated_power_kw"`
	Voltage      float64     `json:"voltage" yaml:"voltage"`
	Phases       int         `json:"phases" yaml:"phases"`
	Efficiency   float64     `json:"efficiency" yaml:"efficiency"`
	DC           bool        `json:"dc" yaml:"dc"`
	Connector    string      `json:"connector" yaml:"connector"`
	TypicalUse   string      `json:"typical_use" yaml:"typical_use"`
}

// EarthingSystem describes a supply earthing arrangement and its loop impedance ceiling.
// EstimatedZe is a typical value for the arrangement, not a measurement.
type EarthingSystem struct {
	Key         EarthingType `json:"key" yaml:"key"`
	Label       string       `json:"label" yaml:"label"`
	MaxZs       float64      `json:"max_zs" yaml:"max_zs"`
	EstimatedZe float64      `json:"estimated_ze" yaml:"estimated_ze"`
	Notes       string       `json:"notes" yaml:"notes"`
}

// CableSpec is one catalogue entry for a conductor size.
// Impedance is per conductor in milliohms per metre.
type CableSpec struct {
	SizeMM2           float64 `json:"size_mm2" yaml:"size_mm2"`
	Label             string  `json:"label" yaml:"label"`
	CapacityA         float64 `json:"capacity_a" yaml:"capacity_a"`
	ImpedanceMOhmPerM float64 `json:"impedance_mohm_per_m" yaml:"impedance_mohm_per_m"`
}

// LoopImpedance returns line plus protective conductor resistance in ohms
// for a run of the given length, assuming an equal-size protective conductor.
func (c CableSpec) LoopImpedance(lengthM float64) float64 {
	return 2 * c.ImpedanceMOhmPerM * lengthM / 1000
}

// ProtectiveDeviceRule is one row of the protective-device decision table.
// Rules are evaluated in order; the first whose DC flag matches and whose
// MaxPowerKW covers the load wins.
type ProtectiveDeviceRule struct {
	Name             string  `json:"name" yaml:"name"`
	DC               bool    `json:"dc" yaml:"dc"`
	MaxPowerKW       float64 `json:"max_power_kw" yaml:"max_power_kw"`
	Description      string  `json:"description" yaml:"description"`
	Curve            string  `json:"curve" yaml:"curve"`
	RCDSensitivityMA int     `json:"rcd_sensitivity_ma" yaml:"rcd_sensitivity_ma"`
	RCDType          string  `json:"rcd_type" yaml:"rcd_type"`
}

// TemperatureBand maps an ambient temperature ceiling to a derating factor.
type TemperatureBand struct {
	MaxAmbientC float64 `json:"max_ambient_c" yaml:"max_ambient_c"`
	Factor      float64 `json:"factor" yaml:"factor"`
}

// SafetyFactors holds the policy constants applied by the calculators.
type SafetyFactors struct {
	DesignCurrentFactor         float64           `json:"design_current_factor" yaml:"design_current_factor"`
	MaxVoltageDropPct           float64           `json:"max_voltage_drop_pct" yaml:"max_voltage_drop_pct"`
	TemperatureBands            []TemperatureBand `json:"temperature_bands" yaml:"temperature_bands"`
	LoadManagedDiversityCap     float64           `json:"load_managed_diversity_cap" yaml:"load_managed_diversity_cap"`
	SoftMarginFraction          float64           `json:"soft_margin_fraction" yaml:"soft_margin_fraction"`
	VoltageDropAdvisoryFraction float64           `json:"voltage_drop_advisory_fraction" yaml:"voltage_drop_advisory_fraction"`
	DNONotifyThresholdKW        float64           `json:"dno_notify_threshold_kw" yaml:"dno_notify_threshold_kw"`
	MinFaultCurrentMultiple     float64           `json:"min_fault_current_multiple" yaml:"min_fault_current_multiple"`
	LongSessionHours            float64           `json:"long_session_hours" yaml:"long_session_hours"`
}

// ReferenceData is the full set of read-only tables injected into the calculators.
type ReferenceData struct {
	Version             string                 `json:"version" yaml:"version"`
	LoadProfiles        []LoadProfile          `json:"load_profiles" yaml:"load_profiles"`
	EarthingSystems     []EarthingSystem       `json:"earthing_systems" yaml:"earthing_systems"`
	Cables              []CableSpec            `json:"cables" yaml:"cables"`
	ProtectiveDevices   []ProtectiveDeviceRule `json:"protective_devices" yaml:"protective_devices"`
	StandardRatingsA    []float64              `json:"standard_ratings_a" yaml:"standard_ratings_a"`
	Safety              SafetyFactors          `json:"safety" yaml:"safety"`
	LightningStructures []LightningStructure   `json:"lightning_structures" yaml:"lightning_structures"`
	LightningLocations  []LightningLocation    `json:"lightning_locations" yaml:"lightning_locations"`
	LightningClasses    []LightningClass       `json:"lightning_classes" yaml:"lightning_classes"`
}

// LoadProfile looks up a charger profile by key.
func (r *ReferenceData) LoadProfile(key ChargerType) (LoadProfile, error) {
	for _, p := range r.LoadProfiles {
		if p.Key == key {
			return p, nil
		}
	}
	return LoadProfile{}, fmt.Errorf("%w: charger %q", ErrUnknownKey, key)
}

// EarthingSystem looks up an earthing arrangement by key.
func (r *ReferenceData) EarthingSystem(key EarthingType) (EarthingSystem, error) {
	for _, e := range r.EarthingSystems {
		if e.Key == key {
			return e, nil
		}
	}
	return EarthingSystem{}, fmt.Errorf("%w: earthing system %q", ErrUnknownKey, key)
}

// TemperatureFactor returns the derating factor for an ambient temperature.
// The first band whose ceiling is not exceeded wins. Temperatures above every
// band get the last (most severe) factor with inRange false.
func (r *ReferenceData) TemperatureFactor(ambientC float64) (factor float64, inRange bool) {
	bands := r.Safety.TemperatureBands
	if len(bands) == 0 {
		return 1, true
	}
	for _, b := range bands {
		if ambientC <= b.MaxAmbientC {
			return b.Factor, true
		}
	}
	return bands[len(bands)-1].Factor, false
}

// ChargerKeys returns the load profile keys in table order.
func (r *ReferenceData) ChargerKeys() []string {
	keys := make([]string, 0, len(r.LoadProfiles))
	for _, p := range r.LoadProfiles {
		keys = append(keys, string(p.Key))
	}
	return keys
}

// EarthingKeys returns the earthing system keys in table order.
func (r *ReferenceData) EarthingKeys() []string {
	keys := make([]string, 0, len(r.EarthingSystems))
	for _, e := range r.EarthingSystems {
		keys = append(keys, string(e.Key))
	}
	return keys
}

// Validate checks every table invariant. Tables that fail validation must not
// be handed to a calculator.
func (r *ReferenceData) Validate() error {
	if len(r.LoadProfiles) == 0 {
		return errors.New("reference data: no load profiles")
	}
	for _, p := range r.LoadProfiles {
		if p.Efficiency <= 0 || p.Efficiency > 1 {
			return fmt.Errorf("reference data: load profile %q efficiency %.3f outside (0,1]", p.Key, p.Efficiency)
		}
		if p.Phases != 1 && p.Phases != 3 {
			return fmt.Errorf("reference data: load profile %q phases must be 1 or 3, got %d", p.Key, p.Phases)
		}
		if p.RatedPowerKW <= 0 || p.Voltage <= 0 {
			return fmt.Errorf("reference data: load profile %q needs positive power and voltage", p.Key)
		}
	}

	if len(r.EarthingSystems) == 0 {
		return errors.New("reference data: no earthing systems")
	}
	for _, e := range r.EarthingSystems {
		if e.MaxZs <= 0 {
			return fmt.Errorf("reference data: earthing system %q max Zs must be positive", e.Key)
		}
		if e.EstimatedZe < 0 {
			return fmt.Errorf("reference data: earthing system %q estimated Ze is negative", e.Key)
		}
	}

	if len(r.Cables) == 0 {
		return errors.New("reference data: empty cable catalogue")
	}
	for i, c := range r.Cables {
		if c.CapacityA <= 0 || c.ImpedanceMOhmPerM <= 0 {
			return fmt.Errorf("reference data: cable %q needs positive capacity and impedance", c.Label)
		}
		if i > 0 && c.CapacityA <= r.Cables[i-1].CapacityA {
			return fmt.Errorf("reference data: cable catalogue must ascend by capacity (%q after %q)", c.Label, r.Cables[i-1].Label)
		}
	}

	if len(r.ProtectiveDevices) == 0 {
		return errors.New("reference data: no protective device rules")
	}
	for i, rating := range r.StandardRatingsA {
		if i > 0 && rating <= r.StandardRatingsA[i-1] {
			return errors.New("reference data: standard ratings must ascend")
		}
	}

	s := r.Safety
	if s.DesignCurrentFactor < 1 {
		return fmt.Errorf("reference data: design current factor %.2f must be >= 1", s.DesignCurrentFactor)
	}
	if s.MaxVoltageDropPct <= 0 || s.MaxVoltageDropPct > 100 {
		return fmt.Errorf("reference data: max voltage drop %.2f%% outside (0,100]", s.MaxVoltageDropPct)
	}
	if s.LoadManagedDiversityCap <= 0 || s.LoadManagedDiversityCap > 1 {
		return fmt.Errorf("reference data: load managed diversity cap %.2f outside (0,1]", s.LoadManagedDiversityCap)
	}
	for i, b := range s.TemperatureBands {
		if b.Factor <= 0 {
			return fmt.Errorf("reference data: temperature factor at %.0fC must be positive", b.MaxAmbientC)
		}
		if i > 0 {
			prev := s.TemperatureBands[i-1]
			if b.MaxAmbientC <= prev.MaxAmbientC {
				return errors.New("reference data: temperature bands must ascend")
			}
			if b.Factor > prev.Factor {
				return errors.New("reference data: temperature factors must not increase with temperature")
			}
		}
	}

	return r.validateLightning()
}
