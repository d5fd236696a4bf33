package thermal

import "math"

// Exponential is the first-order thermal law of a motor winding.
type Exponential struct {
	TimeConstant float64 // s
	SteadyRise   float64 // °C above ambient
	Ambient      float64 // °C
}

// Heating is the temperature t seconds after switching on from ambient.
func (e Exponential) Heating(t float64) float64 {
	return e.SteadyRise*(1-math.Exp(-t/e.TimeConstant)) + e.Ambient
}

// Cooling is the temperature t seconds after switching off from steady state.
func (e Exponential) Cooling(t float64) float64 {
	return e.SteadyRise*math.Exp(-t/e.TimeConstant) + e.Ambient
}

// Phase of a stitched segment.
type Phase string

const (
	PhaseHeating Phase = "heating"
	PhaseCooling Phase = "cooling"
)

// Segment describes one stitched piece of a curve.
type Segment struct {
	Cycle   int   `json:"cycle"`
	Phase   Phase `json:"phase"`
	Samples int   `json:"samples"`
}

// Curve is a sampled temperature trajectory. Time and Temperature have
// equal length.
type Curve struct {
	Mode        Mode
	Time        []float64
	Temperature []float64
	Segments    []Segment
}

// Len returns the number of samples.
func (c Curve) Len() int { return len(c.Temperature) }

// Peak returns the highest temperature of the curve, or NaN when empty.
func (c Curve) Peak() float64 {
	if len(c.Temperature) == 0 {
		return math.NaN()
	}
	peak := c.Temperature[0]
	for _, v := range c.Temperature[1:] {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Cycle is the on/off split of one periodic-intermittent period.
type Cycle struct {
	OnSeconds  int
	OffSeconds int
	Loops      int
}

// NewCycle splits the fixed 10-minute period by ratio over the fixed ten loops.
func NewCycle(ratio float64) Cycle {
	on := int(ratio * CycleSeconds)
	return Cycle{OnSeconds: on, OffSeconds: CycleSeconds - on, Loops: CycleLoops}
}

// ContinuousCurve is a single heating run over the whole grid.
func ContinuousCurve(sol Solution, grid []float64) Curve {
	law := sol.Exponential()
	temps := evaluate(grid, law.Heating)
	return Curve{
		Mode:        sol.Mode,
		Time:        append([]float64(nil), grid...),
		Temperature: temps,
		Segments:    []Segment{{Cycle: 0, Phase: PhaseHeating, Samples: len(temps)}},
	}
}

// ShortTimeCurve heats for duration seconds, then follows the cooling law
// from the point it drops to the temperature reached when heating stopped.
// The result never extends past the grid.
func ShortTimeCurve(sol Solution, grid []float64, duration int) (Curve, error) {
	law := sol.Exponential()
	if duration > len(grid) {
		duration = len(grid)
	}
	if duration <= 0 {
		return Curve{}, modeErr(sol.Mode, ErrCurveAssembly, "empty heating segment: duration=%d s grid=%d", duration, len(grid))
	}
	heating := evaluate(grid[:duration], law.Heating)
	stop := heating[len(heating)-1]

	cooling := selectCapped(evaluate(grid, law.Cooling), func(v float64) bool { return v <= stop }, len(grid))

	temps := make([]float64, 0, len(heating)+len(cooling))
	temps = append(temps, heating...)
	temps = append(temps, cooling...)
	if len(temps) > len(grid) {
		temps = temps[:len(grid)]
	}
	coolKept := len(temps) - len(heating)

	return Curve{
		Mode:        sol.Mode,
		Time:        append([]float64(nil), grid[:len(temps)]...),
		Temperature: temps,
		Segments: []Segment{
			{Cycle: 0, Phase: PhaseHeating, Samples: len(heating)},
			{Cycle: 0, Phase: PhaseCooling, Samples: coolKept},
		},
	}, nil
}

// PeriodicCurve stitches cycle.Loops on/off periods. Each period picks up
// the heating law where it reaches the temperature the previous cooling
// ended at, and the cooling law where it drops below the temperature the
// heating ended at. The fold is sequential: every cycle depends on the last.
func PeriodicCurve(sol Solution, grid []float64, cycle Cycle) (Curve, error) {
	law := sol.Exponential()
	heatingLaw := evaluate(grid, law.Heating)
	coolingLaw := evaluate(grid, law.Cooling)

	var (
		temps    []float64
		segments []Segment
		lastOff  float64
	)
	for i := 0; i < cycle.Loops; i++ {
		floor := lastOff
		on := selectCapped(heatingLaw, func(v float64) bool { return v >= floor }, cycle.OnSeconds)
		if len(on) == 0 {
			return Curve{}, modeErr(sol.Mode, ErrCurveAssembly,
				"cycle %d: no heating sample at or above %.3f °C (on=%d s, grid=%d)", i+1, floor, cycle.OnSeconds, len(grid))
		}
		ceiling := on[len(on)-1]
		off := selectCapped(coolingLaw, func(v float64) bool { return v <= ceiling }, cycle.OffSeconds)
		if len(off) == 0 {
			return Curve{}, modeErr(sol.Mode, ErrCurveAssembly,
				"cycle %d: no cooling sample at or below %.3f °C (off=%d s, grid=%d)", i+1, ceiling, cycle.OffSeconds, len(grid))
		}
		lastOff = off[len(off)-1]

		temps = append(temps, on...)
		temps = append(temps, off...)
		segments = append(segments,
			Segment{Cycle: i + 1, Phase: PhaseHeating, Samples: len(on)},
			Segment{Cycle: i + 1, Phase: PhaseCooling, Samples: len(off)},
		)
	}
	if len(temps) > len(grid) {
		return Curve{}, modeErr(sol.Mode, ErrCurveAssembly, "stitched %d samples onto a grid of %d", len(temps), len(grid))
	}

	return Curve{
		Mode:        sol.Mode,
		Time:        append([]float64(nil), grid[:len(temps)]...),
		Temperature: temps,
		Segments:    segments,
	}, nil
}

func evaluate(times []float64, law func(float64) float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = law(t)
	}
	return out
}

// selectCapped keeps values satisfying keep, in order, stopping at limit.
func selectCapped(values []float64, keep func(float64) bool, limit int) []float64 {
	if limit <= 0 {
		return nil
	}
	out := make([]float64, 0, min(limit, len(values)))
	for _, v := range values {
		if !keep(v) {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
