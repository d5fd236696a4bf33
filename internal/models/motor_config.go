package models

import (
	"math"

	"motorheat/internal/thermal"
)

// MotorConfig is the rating plate and duty pattern as a user enters it.
type MotorConfig struct {
	Class                   string  `json:"class" mapstructure:"class" binding:"required" example:"F"`
	RatedPowerKW            float64 `json:"rated_power_kw" mapstructure:"rated_power_kw" example:"3"`
	EfficiencyPercent       float64 `json:"efficiency_percent" mapstructure:"efficiency_percent" example:"82"`
	MassKg                  float64 `json:"mass_kg" mapstructure:"mass_kg" example:"34"`
	SpeedRPM                float64 `json:"speed_rpm" mapstructure:"speed_rpm" example:"1500"`
	ContinuousDurationMin   float64 `json:"continuous_duration_min" mapstructure:"continuous_duration_min" example:"180"`
	ShortTimeDurationMin    float64 `json:"short_time_duration_min" mapstructure:"short_time_duration_min" example:"60"`
	IntermittentDutyPercent float64 `json:"intermittent_duty_percent" mapstructure:"intermittent_duty_percent" example:"40"`
}

// ToMotor converts user units (kW, %, minutes) into the SI motor the
// solver works on. Durations are rounded to whole seconds.
func (c MotorConfig) ToMotor() (thermal.Motor, error) {
	class, err := thermal.ParseHeatClass(c.Class)
	if err != nil {
		return thermal.Motor{}, err
	}
	m := thermal.Motor{
		Class:             class,
		RatedPower:        c.RatedPowerKW * 1000,
		Efficiency:        c.EfficiencyPercent / 100,
		Mass:              c.MassKg,
		Speed:             c.SpeedRPM,
		ContinuousSeconds: minutesToSeconds(c.ContinuousDurationMin),
		ShortTimeSeconds:  minutesToSeconds(c.ShortTimeDurationMin),
		DutyRatio:         c.IntermittentDutyPercent / 100,
	}
	return m, m.Validate()
}

// minutesToSeconds rounds to whole seconds. Values outside the int32 range
// are clamped so the conversion stays defined and Validate can reject them.
func minutesToSeconds(minutes float64) int {
	secs := math.Round(minutes * 60)
	switch {
	case math.IsNaN(secs):
		return 0
	case secs > math.MaxInt32:
		return math.MaxInt32
	case secs < math.MinInt32:
		return math.MinInt32
	}
	return int(secs)
}
