package models

import "time"

// Run statuses.
const (
	RunCompleted = "COMPLETED"
	RunFailed    = "FAILED"
)

// SimulationRun is one evaluation of all duty modes for a motor.
type SimulationRun struct {
	ID          string       `json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	Status      string       `json:"status"` // COMPLETED | FAILED
	Config      MotorConfig  `json:"config"`
	RiseLimitC  float64      `json:"rise_limit_c,omitempty"`
	MaxTempC    float64      `json:"max_temp_c,omitempty"`
	LossFactor  float64      `json:"loss_factor,omitempty"`
	Modes       []ModeResult `json:"modes,omitempty"`
	Error       string       `json:"error,omitempty"`
	FailedMode  string       `json:"failed_mode,omitempty"`
	WithinLimit bool         `json:"within_limit"`
}

// ModeResult is the solved model and the curve summary of one duty mode.
type ModeResult struct {
	Mode                   string       `json:"mode"` // S1_NOMINAL | S1_COOLING | S2 | S3
	AmbientC               float64      `json:"ambient_c"`
	EquivalentPowerW       float64      `json:"equivalent_power_w"`
	HeatLossPowerW         float64      `json:"heat_loss_power_w"`
	ThermalResistanceWPerC float64      `json:"thermal_resistance_w_per_c"`
	TimeConstantS          float64      `json:"time_constant_s"`
	AsymptoticRiseC        float64      `json:"asymptotic_rise_c"`
	PeakTempC              float64      `json:"peak_temp_c"`
	WithinLimit            bool         `json:"within_limit"`
	Samples                int          `json:"samples"`
	ImagePath              string       `json:"image_path,omitempty"`
	Curve                  []CurvePoint `json:"curve,omitempty"`
}

// CurvePoint is a single (time, temperature) sample.
type CurvePoint struct {
	TimeS float64 `json:"t"`
	TempC float64 `json:"temp_c"`
}

// WithoutCurves returns a copy of r with curve samples stripped.
func (r SimulationRun) WithoutCurves() SimulationRun {
	if len(r.Modes) == 0 {
		return r
	}
	modes := make([]ModeResult, len(r.Modes))
	for i, m := range r.Modes {
		m.Curve = nil
		modes[i] = m
	}
	r.Modes = modes
	return r
}
