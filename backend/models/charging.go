// ABOUTME: Data models for EV charge session estimates
// ABOUTME: Battery charge delta input and energy, duration and cost output

package models

// ChargingInput describes a single charge session.
type ChargingInput struct {
	Charger            ChargerType `json:"charger" yaml:"charger" validate:"required"`
	BatteryCapacityKWh float64     `json:"battery_capacity_kwh" yaml:"battery_capacity_kwh" validate:"gte=0,lte=500"`
	CurrentLevelPct    float64     `json:"current_level_pct" yaml:"current_level_pct" validate:"gte=0,lte=100"`
	TargetLevelPct     float64     `json:"target_level_pct" yaml:"target_level_pct" validate:"gte=0,lte=100"`
	RatePencePerKWh    float64     `json:"rate_pence_per_kwh,omitempty" yaml:"rate_pence_per_kwh,omitempty" validate:"gte=0,lte=1000"`
}

// ChargingResult holds the derived session figures.
// When Computable is false every energy, duration and cost figure is zero.
type ChargingResult struct {
	Input            ChargingInput `json:"input" yaml:"input"`
	Profile          LoadProfile   `json:"profile" yaml:"profile"`
	EffectivePowerKW float64       `json:"effective_power_kw" yaml:"effective_power_kw"`
	DesignCurrentA   float64       `json:"design_current_a" yaml:"design_current_a"`
	Computable       bool          `json:"computable" yaml:"computable"`
	EnergyKWh        float64       `json:"energy_kwh" yaml:"energy_kwh"`
	DurationHours    float64       `json:"duration_hours" yaml:"duration_hours"`
	DurationMinutes  int           `json:"duration_minutes" yaml:"duration_minutes"`
	CostGBP          float64       `json:"cost_gbp" yaml:"cost_gbp"`
	CostIncluded     bool          `json:"cost_included" yaml:"cost_included"`
	Advisory         Advisory      `json:"advisory" yaml:"advisory"`
}
