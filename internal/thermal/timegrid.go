package thermal

import "fmt"

// Fixed horizon of the periodic-intermittent simulation: ten 10-minute cycles.
const (
	CycleSeconds = 600
	CycleLoops   = 10
)

// MaxGridSamples caps the length of any time grid, about 24 days at one
// sample per second. The short-time grid is four times its duration, so
// short-time durations are capped at a quarter of it.
const MaxGridSamples = 1 << 21

// GridSpec holds the durations the per-mode time grids are derived from.
type GridSpec struct {
	ContinuousSeconds int
	ShortTimeSeconds  int
	LoopSeconds       int
	LoopCount         int
}

// NewGridSpec builds the grid spec for m with the fixed periodic horizon.
func NewGridSpec(m Motor) GridSpec {
	return GridSpec{
		ContinuousSeconds: m.ContinuousSeconds,
		ShortTimeSeconds:  m.ShortTimeSeconds,
		LoopSeconds:       CycleSeconds,
		LoopCount:         CycleLoops,
	}
}

// Times returns the integer-second stamps 0,1,2,… sampled for mode.
//
// The short-time grid runs four times the on-duration so the cooling branch
// always has room to reach its stitch point; the periodic grid is ten times
// the whole horizon and only a prefix of it ends up in the curve.
func (g GridSpec) Times(mode Mode) ([]float64, error) {
	var n int
	switch mode {
	case ModeContinuousNominal, ModeContinuousCooling:
		n = g.ContinuousSeconds
	case ModeShortTime:
		if g.ShortTimeSeconds > MaxGridSamples/4 {
			return nil, fmt.Errorf("%w: short-time grid of 4×%d s exceeds %d samples", ErrInvalidConfiguration, g.ShortTimeSeconds, MaxGridSamples)
		}
		n = 4 * g.ShortTimeSeconds
	case ModePeriodic:
		n = 10 * g.LoopSeconds * g.LoopCount
	default:
		return nil, fmt.Errorf("%w: no time grid for mode %q", ErrInvalidConfiguration, string(mode))
	}
	if n < 0 {
		n = 0
	}
	if n > MaxGridSamples {
		return nil, fmt.Errorf("%w: %s grid of %d samples exceeds %d", ErrInvalidConfiguration, mode, n, MaxGridSamples)
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i)
	}
	return times, nil
}
