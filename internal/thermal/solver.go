package thermal

import (
	"fmt"
	"math"
	"strings"
)

// Mode identifies a standardized duty type.
type Mode string

const (
	ModeContinuousNominal Mode = "S1_NOMINAL" // S1 at 40 °C ambient
	ModeContinuousCooling Mode = "S1_COOLING" // S1 at 24 °C coolant
	ModeShortTime         Mode = "S2"
	ModePeriodic          Mode = "S3"
)

// Modes lists every duty mode in the order a run must solve them.
var Modes = []Mode{ModeContinuousNominal, ModeContinuousCooling, ModeShortTime, ModePeriodic}

// ParseMode accepts the canonical mode names case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown duty mode %q", ErrInvalidConfiguration, s)
}

const (
	CopperHeatCapacity = 385.0 // J/(kg·°C)
	CoolingAmbientC    = 24.0
)

// Motor is the validated rating plate plus the duty pattern, in SI units.
type Motor struct {
	Class             HeatClass
	RatedPower        float64 // W
	Efficiency        float64 // fraction
	Mass              float64 // kg
	Speed             float64 // rpm
	ContinuousSeconds int
	ShortTimeSeconds  int
	DutyRatio         float64 // fraction of each cycle the motor is on
}

// Validate rejects inputs no mode can make sense of. Efficiency and duty
// ratio at exactly 0 or 1 are let through: they surface as arithmetic or
// assembly errors in the mode they break, which names the culprit better.
func (m Motor) Validate() error {
	if _, err := ResolveClass(m.Class); err != nil {
		return err
	}
	switch {
	case !(m.RatedPower > 0):
		return fmt.Errorf("%w: rated power must be > 0, got %g W", ErrInvalidConfiguration, m.RatedPower)
	case !(m.Mass > 0):
		return fmt.Errorf("%w: mass must be > 0, got %g kg", ErrInvalidConfiguration, m.Mass)
	case m.Speed < 0 || math.IsNaN(m.Speed):
		return fmt.Errorf("%w: speed must be >= 0, got %g rpm", ErrInvalidConfiguration, m.Speed)
	case m.Efficiency < 0 || m.Efficiency > 1 || math.IsNaN(m.Efficiency):
		return fmt.Errorf("%w: efficiency must be within (0,1), got %g", ErrInvalidConfiguration, m.Efficiency)
	case m.DutyRatio < 0 || m.DutyRatio > 1 || math.IsNaN(m.DutyRatio):
		return fmt.Errorf("%w: duty ratio must be within (0,1), got %g", ErrInvalidConfiguration, m.DutyRatio)
	case m.ContinuousSeconds <= 0:
		return fmt.Errorf("%w: continuous duration must be > 0, got %d s", ErrInvalidConfiguration, m.ContinuousSeconds)
	case m.ShortTimeSeconds <= 0:
		return fmt.Errorf("%w: short-time duration must be > 0, got %d s", ErrInvalidConfiguration, m.ShortTimeSeconds)
	case m.ContinuousSeconds > MaxGridSamples:
		return fmt.Errorf("%w: continuous duration must be <= %d s, got %d s", ErrInvalidConfiguration, MaxGridSamples, m.ContinuousSeconds)
	case m.ShortTimeSeconds > MaxGridSamples/4:
		return fmt.Errorf("%w: short-time duration must be <= %d s, got %d s", ErrInvalidConfiguration, MaxGridSamples/4, m.ShortTimeSeconds)
	}
	return nil
}

// Solution is the thermal model of one duty mode.
type Solution struct {
	Mode              Mode    `json:"mode"`
	Ambient           float64 `json:"ambient_c"`
	EquivalentPower   float64 `json:"equivalent_power_w"`
	HeatLossPower     float64 `json:"heat_loss_power_w"`
	ThermalResistance float64 `json:"thermal_resistance_w_per_c"`
	TimeConstant      float64 `json:"time_constant_s"`
	AsymptoticRise    float64 `json:"asymptotic_rise_c"`
}

// Exponential returns the heating/cooling law parameterized by s.
func (s Solution) Exponential() Exponential {
	return Exponential{TimeConstant: s.TimeConstant, SteadyRise: s.AsymptoticRise, Ambient: s.Ambient}
}

// Solver derives per-mode solutions for one motor.
type Solver struct {
	motor      Motor
	limits     Limits
	lossFactor float64
}

// NewSolver validates m and resolves its class limits and loss factor.
func NewSolver(m Motor) (*Solver, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	limits, err := ResolveClass(m.Class)
	if err != nil {
		return nil, err
	}
	return &Solver{motor: m, limits: limits, lossFactor: LossFactor(m.Speed)}, nil
}

func (s *Solver) Motor() Motor        { return s.motor }
func (s *Solver) Limits() Limits      { return s.limits }
func (s *Solver) LossFactor() float64 { return s.lossFactor }

// ContinuousNominal solves S1 at the nominal 40 °C ambient. Its time
// constant is the input ShortTime needs.
func (s *Solver) ContinuousNominal() (Solution, error) {
	return s.solve(ModeContinuousNominal, NominalAmbientC, s.motor.RatedPower)
}

// ContinuousCooling solves S1 with a 24 °C coolant, where the colder
// medium allows a higher equivalent load.
func (s *Solver) ContinuousCooling() (Solution, error) {
	dT := NominalAmbientC - CoolingAmbientC
	radicand := 1 + dT*(1+s.lossFactor)/s.limits.RiseLimit
	root, err := sqrtChecked(ModeContinuousCooling, radicand, "1+ΔT(1+a)/rise", s.params())
	if err != nil {
		return Solution{}, err
	}
	return s.solve(ModeContinuousCooling, CoolingAmbientC, s.motor.RatedPower*root)
}

// ShortTime solves S2. nominalTimeConstant must come from ContinuousNominal.
func (s *Solver) ShortTime(nominalTimeConstant float64) (Solution, error) {
	params := fmt.Sprintf("%s, Tn_nominal=%g s", s.params(), nominalTimeConstant)
	ratio, err := divide(ModeShortTime, float64(s.motor.ShortTimeSeconds), nominalTimeConstant, "s2/Tn_nominal", params)
	if err != nil {
		return Solution{}, err
	}
	inner, err := divide(ModeShortTime, 1+s.lossFactor, 1-math.Exp(-ratio), "(1+a)/(1-e^(-s2/Tn))", params)
	if err != nil {
		return Solution{}, err
	}
	root, err := sqrtChecked(ModeShortTime, inner-s.lossFactor, "(1+a)/(1-e^(-s2/Tn))-a", params)
	if err != nil {
		return Solution{}, err
	}
	return s.solve(ModeShortTime, NominalAmbientC, s.motor.RatedPower*root)
}

// PeriodicIntermittent solves S3 for the configured duty ratio.
func (s *Solver) PeriodicIntermittent() (Solution, error) {
	eps := s.motor.DutyRatio
	params := s.params()
	share, err := divide(ModePeriodic, eps, eps+(1+s.lossFactor)*(1-eps), "ε/(ε+(1+a)(1-ε))", params)
	if err != nil {
		return Solution{}, err
	}
	root, err := sqrtChecked(ModePeriodic, share, "ε/(ε+(1+a)(1-ε))", params)
	if err != nil {
		return Solution{}, err
	}
	power, err := divide(ModePeriodic, s.motor.RatedPower, root, "P/sqrt(...)", params)
	if err != nil {
		return Solution{}, err
	}
	return s.solve(ModePeriodic, NominalAmbientC, power)
}

// solve applies the formulas shared by every mode. The asymptotic rise
// collapses to the class rise limit by construction of A.
func (s *Solver) solve(mode Mode, ambient, power float64) (Solution, error) {
	params := s.params()
	lossRatio, err := divide(mode, 1-s.motor.Efficiency, s.motor.Efficiency, "(1-η)/η", params)
	if err != nil {
		return Solution{}, err
	}
	heatLoss := power * lossRatio
	resistance, err := divide(mode, heatLoss, s.limits.RiseLimit, "P_loss/rise", params)
	if err != nil {
		return Solution{}, err
	}
	tau, err := divide(mode, CopperHeatCapacity*s.motor.Mass, resistance, "c·m/A", params)
	if err != nil {
		return Solution{}, err
	}
	return Solution{
		Mode:              mode,
		Ambient:           ambient,
		EquivalentPower:   power,
		HeatLossPower:     heatLoss,
		ThermalResistance: resistance,
		TimeConstant:      tau,
		AsymptoticRise:    s.limits.RiseLimit,
	}, nil
}

func (s *Solver) params() string {
	m := s.motor
	return fmt.Sprintf("class=%s P=%g W η=%g m=%g kg n=%g rpm a=%g ε=%g s1=%d s s2=%d s",
		m.Class, m.RatedPower, m.Efficiency, m.Mass, m.Speed, s.lossFactor, m.DutyRatio,
		m.ContinuousSeconds, m.ShortTimeSeconds)
}

func divide(mode Mode, num, den float64, what, params string) (float64, error) {
	if den == 0 {
		return 0, modeErr(mode, ErrArithmeticDomain, "division by zero in %s; %s", what, params)
	}
	q := num / den
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, modeErr(mode, ErrArithmeticDomain, "non-finite %s; %s", what, params)
	}
	return q, nil
}

func sqrtChecked(mode Mode, x float64, what, params string) (float64, error) {
	if x < 0 || math.IsNaN(x) {
		return 0, modeErr(mode, ErrArithmeticDomain, "negative square root of %s=%g; %s", what, x, params)
	}
	return math.Sqrt(x), nil
}
