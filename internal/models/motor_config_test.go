package models

import (
	"errors"
	"math"
	"testing"

	"motorheat/internal/thermal"
)

func TestMotorConfig_ToMotor_ConvertsUnits(t *testing.T) {
	cfg := MotorConfig{
		Class:                   "f",
		RatedPowerKW:            3,
		EfficiencyPercent:       82,
		MassKg:                  34,
		SpeedRPM:                1500,
		ContinuousDurationMin:   180,
		ShortTimeDurationMin:    60,
		IntermittentDutyPercent: 40,
	}
	m, err := cfg.ToMotor()
	if err != nil {
		t.Fatalf("ToMotor: %v", err)
	}
	want := thermal.Motor{
		Class:             thermal.ClassF,
		RatedPower:        3000,
		Efficiency:        0.82,
		Mass:              34,
		Speed:             1500,
		ContinuousSeconds: 10800,
		ShortTimeSeconds:  3600,
		DutyRatio:         0.4,
	}
	if m != want {
		t.Fatalf("got %+v, want %+v", m, want)
	}
}

func TestMotorConfig_ToMotor_RejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		cfg  MotorConfig
	}{
		{"unknown class", MotorConfig{Class: "Z", RatedPowerKW: 3, EfficiencyPercent: 82, MassKg: 34, ContinuousDurationMin: 1, ShortTimeDurationMin: 1, IntermittentDutyPercent: 40}},
		{"efficiency over 100", MotorConfig{Class: "F", RatedPowerKW: 3, EfficiencyPercent: 120, MassKg: 34, ContinuousDurationMin: 1, ShortTimeDurationMin: 1, IntermittentDutyPercent: 40}},
		{"zero short-time duration", MotorConfig{Class: "F", RatedPowerKW: 3, EfficiencyPercent: 82, MassKg: 34, ContinuousDurationMin: 1, ShortTimeDurationMin: 0, IntermittentDutyPercent: 40}},
		{"continuous duration beyond the grid cap", MotorConfig{Class: "F", RatedPowerKW: 3, EfficiencyPercent: 82, MassKg: 34, ContinuousDurationMin: 1e8, ShortTimeDurationMin: 1, IntermittentDutyPercent: 40}},
		{"continuous duration beyond int range", MotorConfig{Class: "F", RatedPowerKW: 3, EfficiencyPercent: 82, MassKg: 34, ContinuousDurationMin: 1e13, ShortTimeDurationMin: 1, IntermittentDutyPercent: 40}},
		{"infinite short-time duration", MotorConfig{Class: "F", RatedPowerKW: 3, EfficiencyPercent: 82, MassKg: 34, ContinuousDurationMin: 1, ShortTimeDurationMin: math.Inf(1), IntermittentDutyPercent: 40}},
		{"NaN continuous duration", MotorConfig{Class: "F", RatedPowerKW: 3, EfficiencyPercent: 82, MassKg: 34, ContinuousDurationMin: math.NaN(), ShortTimeDurationMin: 1, IntermittentDutyPercent: 40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.cfg.ToMotor(); !errors.Is(err, thermal.ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestSimulationRun_WithoutCurves(t *testing.T) {
	run := SimulationRun{ID: "r1", Modes: []ModeResult{
		{Mode: "S1_NOMINAL", Curve: []CurvePoint{{TimeS: 0, TempC: 40}}},
	}}
	stripped := run.WithoutCurves()
	if stripped.Modes[0].Curve != nil {
		t.Fatalf("expected curve stripped")
	}
	if run.Modes[0].Curve == nil {
		t.Fatalf("original run must keep its curve")
	}
}
