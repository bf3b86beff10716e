// ABOUTME: Data models and reference tables for lightning protection risk assessment
// ABOUTME: Collection area, strike frequency and protection class selection inputs/outputs

package models

import (
	"errors"
	"fmt"
)

// StructureClass identifies the tolerable strike frequency category of a structure
type StructureClass string

const (
	StructureDomestic   StructureClass = "domestic"
	StructureCommercial StructureClass = "commercial"
	StructurePublic     StructureClass = "public"
	StructureHazardous  StructureClass = "hazardous"
)

// LocationFactor identifies the relative location of a structure
type LocationFactor string

const (
	LocationSurroundedTaller  LocationFactor = "surrounded_taller"
	LocationSurroundedSimilar LocationFactor = "surrounded_similar"
	LocationIsolated          LocationFactor = "isolated"
	LocationHilltop           LocationFactor = "hilltop"
)

// LightningStructure maps a structure class to its tolerable strikes per year.
type LightningStructure struct {
	Key                StructureClass `json:"key" yaml:"key"`
	Label              string         `json:"label" yaml:"label"`
	TolerableFrequency float64        `json:"tolerable_frequency" yaml:"tolerable_frequency"`
}

// LightningLocation maps a location to its environmental factor Cd.
type LightningLocation struct {
	Key    LocationFactor `json:"key" yaml:"key"`
	Label  string         `json:"label" yaml:"label"`
	Factor float64        `json:"factor" yaml:"factor"`
}

// LightningClass is one lightning protection system class. Classes are listed
// from least to most onerous.
type LightningClass struct {
	Class                 string  `json:"class" yaml:"class"`
	MinEfficiency         float64 `json:"min_efficiency" yaml:"min_efficiency"`
	MeshSizeM             float64 `json:"mesh_size_m" yaml:"mesh_size_m"`
	DownConductorSpacingM float64 `json:"down_conductor_spacing_m" yaml:"down_conductor_spacing_m"`
}

// StructureClass looks up a structure class by key.
func (r *ReferenceData) StructureClass(key StructureClass) (LightningStructure, error) {
	for _, s := range r.LightningStructures {
		if s.Key == key {
			return s, nil
		}
	}
	return LightningStructure{}, fmt.Errorf("%w: structure class %q", ErrUnknownKey, key)
}

// LocationFactor looks up a location factor by key.
func (r *ReferenceData) LocationFactor(key LocationFactor) (LightningLocation, error) {
	for _, l := range r.LightningLocations {
		if l.Key == key {
			return l, nil
		}
	}
	return LightningLocation{}, fmt.Errorf("%w: location %q", ErrUnknownKey, key)
}

func (r *ReferenceData) validateLightning() error {
	for _, s := range r.LightningStructures {
		if s.TolerableFrequency <= 0 {
			return fmt.Errorf("reference data: structure %q tolerable frequency must be positive", s.Key)
		}
	}
	for _, l := range r.LightningLocations {
		if l.Factor <= 0 {
			return fmt.Errorf("reference data: location %q factor must be positive", l.Key)
		}
	}
	for i, c := range r.LightningClasses {
		if c.MinEfficiency <= 0 || c.MinEfficiency >= 1 {
			return fmt.Errorf("reference data: lightning class %s efficiency outside (0,1)", c.Class)
		}
		if i > 0 && c.MinEfficiency <= r.LightningClasses[i-1].MinEfficiency {
			return errors.New("reference data: lightning classes must ascend by efficiency")
		}
		if c.DownConductorSpacingM <= 0 {
			return fmt.Errorf("reference data: lightning class %s needs positive conductor spacing", c.Class)
		}
	}
	return nil
}

// LightningInput describes the structure being assessed.
type LightningInput struct {
	LengthM            float64        `json:"length_m" yaml:"length_m" validate:"gt=0,lte=1000"`
	WidthM             float64        `json:"width_m" yaml:"width_m" validate:"gt=0,lte=1000"`
	HeightM            float64        `json:"height_m" yaml:"height_m" validate:"gt=0,lte=1000"`
	GroundFlashDensity float64        `json:"ground_flash_density" yaml:"ground_flash_density" validate:"gt=0,lte=100"`
	Location           LocationFactor `json:"location" yaml:"location" validate:"required"`
	Structure          StructureClass `json:"structure" yaml:"structure" validate:"required"`
}

// LightningResult holds the risk assessment figures.
type LightningResult struct {
	Input                    LightningInput `json:"input" yaml:"input"`
	CollectionAreaM2         float64        `json:"collection_area_m2" yaml:"collection_area_m2"`
	ExpectedStrikesPerYear   float64        `json:"expected_strikes_per_year" yaml:"expected_strikes_per_year"`
	TolerableStrikesPerYear  float64        `json:"tolerable_strikes_per_year" yaml:"tolerable_strikes_per_year"`
	ProtectionRequired       bool           `json:"protection_required" yaml:"protection_required"`
	RequiredEfficiency       float64        `json:"required_efficiency" yaml:"required_efficiency"`
	Class                    string         `json:"class,omitempty" yaml:"class,omitempty"`
	MeshSizeM                float64        `json:"mesh_size_m,omitempty" yaml:"mesh_size_m,omitempty"`
	DownConductors           int            `json:"down_conductors,omitempty" yaml:"down_conductors,omitempty"`
	SpecialistSizingRequired bool           `json:"specialist_sizing_required" yaml:"specialist_sizing_required"`
	Advisory                 Advisory       `json:"advisory" yaml:"advisory"`
	Summary                  string         `json:"summary" yaml:"summary"`
}
