// ABOUTME: Default reference tables for EV charge point compliance calculations
// ABOUTME: Builds a fresh ReferenceData value on each call so callers never share mutable tables

package reference

import "github.com/markalston/evse-calc/backend/models"

// DefaultVersion identifies the built-in table set.
const DefaultVersion = "bs7671-2022-a2-default"

// Default returns the built-in reference tables.
//
// Cable capacities are for multicore armoured copper cable clipped direct at
// 30°C; impedances are per conductor at 70°C operating temperature. Estimated
// Ze values are typical published figures for each earthing arrangement and
// must be replaced with a site measurement where one is available.
func Default() *models.ReferenceData {
	return &models.ReferenceData{
		Version: DefaultVersion,
		LoadProfiles: []models.LoadProfile{
			{Key: models.ChargerSlow3kW, Label: "3.6kW home charger", RatedPowerKW: 3.6, Voltage: 230, Phases: 1, Efficiency: 0.90, Connector: "Type 2", TypicalUse: "Overnight home charging"},
			{Key: models.ChargerFast7kW, Label: "7kW wallbox", RatedPowerKW: 7.0, Voltage: 230, Phases: 1, Efficiency: 0.92, Connector: "Type 2", TypicalUse: "Home and workplace charging"},
			{Key: models.ChargerFast11kW, Label: "11kW three-phase wallbox", RatedPowerKW: 11.0, Voltage: 400, Phases: 3, Efficiency: 0.93, Connector: "Type 2", TypicalUse: "Workplace and fleet depots"},
			{Key: models.ChargerFast22kW, Label: "22kW three-phase post", RatedPowerKW: 22.0, Voltage: 400, Phases: 3, Efficiency: 0.94, Connector: "Type 2", TypicalUse: "Destination and public charging"},
			{Key: models.ChargerRapid50kW, Label: "50kW DC rapid charger", RatedPowerKW: 50.0, Voltage: 400, Phases: 3, Efficiency: 0.95, DC: true, Connector: "CCS / CHAdeMO", TypicalUse: "Forecourt and en-route charging"},
			{Key: models.ChargerUltra150kW, Label: "150kW DC ultra-rapid charger", RatedPowerKW: 150.0, Voltage: 400, Phases: 3, Efficiency: 0.95, DC: true, Connector: "CCS", TypicalUse: "Motorway service hubs"},
		},
		EarthingSystems: []models.EarthingSystem{
			{Key: models.EarthingTNCS, Label: "TN-C-S (PME)", MaxZs: 1.37, EstimatedZe: 0.35, Notes: "Combined neutral and earth in the supply; open-PEN protection needed for outdoor charge points"},
			{Key: models.EarthingTNS, Label: "TN-S", MaxZs: 1.37, EstimatedZe: 0.8, Notes: "Separate earth conductor via the cable sheath"},
			{Key: models.EarthingTT, Label: "TT", MaxZs: 200, EstimatedZe: 5.0, Notes: "Installation earth electrode; fault protection relies on the RCD"},
		},
		Cables: []models.CableSpec{
			{SizeMM2: 1.5, Label: "1.5mm² SWA", CapacityA: 27, ImpedanceMOhmPerM: 14.5},
			{SizeMM2: 2.5, Label: "2.5mm² SWA", CapacityA: 36, ImpedanceMOhmPerM: 8.87},
			{SizeMM2: 4, Label: "4mm² SWA", CapacityA: 49, ImpedanceMOhmPerM: 5.52},
			{SizeMM2: 6, Label: "6mm² SWA", CapacityA: 62, ImpedanceMOhmPerM: 3.69},
			{SizeMM2: 10, Label: "10mm² SWA", CapacityA: 85, ImpedanceMOhmPerM: 2.19},
			{SizeMM2: 16, Label: "16mm² SWA", CapacityA: 110, ImpedanceMOhmPerM: 1.38},
			{SizeMM2: 25, Label: "25mm² SWA", CapacityA: 146, ImpedanceMOhmPerM: 0.870},
			{SizeMM2: 35, Label: "35mm² SWA", CapacityA: 180, ImpedanceMOhmPerM: 0.627},
			{SizeMM2: 50, Label: "50mm² SWA", CapacityA: 219, ImpedanceMOhmPerM: 0.463},
			{SizeMM2: 70, Label: "70mm² SWA", CapacityA: 279, ImpedanceMOhmPerM: 0.321},
			{SizeMM2: 95, Label: "95mm² SWA", CapacityA: 338, ImpedanceMOhmPerM: 0.232},
			{SizeMM2: 120, Label: "120mm² SWA", CapacityA: 392, ImpedanceMOhmPerM: 0.184},
			{SizeMM2: 150, Label: "150mm² SWA", CapacityA: 451, ImpedanceMOhmPerM: 0.150},
			{SizeMM2: 185, Label: "185mm² SWA", CapacityA: 515, ImpedanceMOhmPerM: 0.121},
			{SizeMM2: 240, Label: "240mm² SWA", CapacityA: 607, ImpedanceMOhmPerM: 0.0929},
		},
		ProtectiveDevices: []models.ProtectiveDeviceRule{
			{Name: "ac_single_phase", MaxPowerKW: 7.4, Description: "Type B RCBO, 30mA Type A with 6mA DC fault detection (RDC-DD)", Curve: "B", RCDSensitivityMA: 30, RCDType: "A"},
			{Name: "ac_three_phase", MaxPowerKW: 22, Description: "4-pole Type B RCBO, 30mA Type A with 6mA DC fault detection (RDC-DD)", Curve: "B", RCDSensitivityMA: 30, RCDType: "A"},
			{Name: "ac_high_power", MaxPowerKW: 2000, Description: "MCCB with 30mA Type B RCD per outlet", Curve: "C", RCDSensitivityMA: 30, RCDType: "B"},
			{Name: "dc_rapid", DC: true, MaxPowerKW: 2000, Description: "MCCB with 30mA Type B RCD on the charger supply", Curve: "C", RCDSensitivityMA: 30, RCDType: "B"},
		},
		StandardRatingsA: []float64{6, 10, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125, 160, 200, 250, 315, 400, 500, 630},
		Safety: models.SafetyFactors{
			DesignCurrentFactor: 1.25,
			MaxVoltageDropPct:   5.0,
			TemperatureBands: []models.TemperatureBand{
				{MaxAmbientC: 25, Factor: 1.03},
				{MaxAmbientC: 30, Factor: 1.00},
				{MaxAmbientC: 35, Factor: 0.94},
				{MaxAmbientC: 40, Factor: 0.87},
				{MaxAmbientC: 45, Factor: 0.79},
				{MaxAmbientC: 50, Factor: 0.71},
				{MaxAmbientC: 55, Factor: 0.61},
				{MaxAmbientC: 60, Factor: 0.50},
			},
			LoadManagedDiversityCap:     0.6,
			SoftMarginFraction:          0.2,
			VoltageDropAdvisoryFraction: 0.8,
			DNONotifyThresholdKW:        3.68,
			MinFaultCurrentMultiple:     5,
			LongSessionHours:            12,
		},
		LightningStructures: []models.LightningStructure{
			{Key: models.StructureDomestic, Label: "Domestic dwelling", TolerableFrequency: 5.5e-3},
			{Key: models.StructureCommercial, Label: "Commercial or industrial", TolerableFrequency: 3e-3},
			{Key: models.StructurePublic, Label: "School, hospital or place of assembly", TolerableFrequency: 1e-3},
			{Key: models.StructureHazardous, Label: "Explosive or hazardous contents", TolerableFrequency: 1e-4},
		},
		LightningLocations: []models.LightningLocation{
			{Key: models.LocationSurroundedTaller, Label: "Surrounded by taller objects", Factor: 0.25},
			{Key: models.LocationSurroundedSimilar, Label: "Surrounded by objects of similar height", Factor: 0.5},
			{Key: models.LocationIsolated, Label: "Isolated", Factor: 1},
			{Key: models.LocationHilltop, Label: "Isolated on a hilltop", Factor: 2},
		},
		LightningClasses: []models.LightningClass{
			{Class: "IV", MinEfficiency: 0.80, MeshSizeM: 20, DownConductorSpacingM: 20},
			{Class: "III", MinEfficiency: 0.90, MeshSizeM: 15, DownConductorSpacingM: 15},
			{Class: "II", MinEfficiency: 0.95, MeshSizeM: 10, DownConductorSpacingM: 10},
			{Class: "I", MinEfficiency: 0.98, MeshSizeM: 5, DownConductorSpacingM: 10},
		},
	}
}
