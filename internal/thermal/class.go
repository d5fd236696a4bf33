package thermal

import (
	"fmt"
	"strings"
)

// HeatClass is the insulation heat-resistance class of a winding.
type HeatClass string

const (
	ClassA HeatClass = "A"
	ClassE HeatClass = "E"
	ClassB HeatClass = "B"
	ClassF HeatClass = "F"
	ClassH HeatClass = "H"
)

// NominalAmbientC is the reference ambient every class limit is stated against.
const NominalAmbientC = 40.0

// allowed temperature rise above NominalAmbientC, °C
var riseLimits = map[HeatClass]float64{
	ClassA: 65,
	ClassE: 80,
	ClassB: 90,
	ClassF: 110,
	ClassH: 135,
}

// Limits are the thermal bounds derived from a heat class.
type Limits struct {
	RiseLimit      float64 `json:"rise_limit_c"`
	MaxTemperature float64 `json:"max_temperature_c"`
}

// ParseHeatClass normalizes user input ("f", " F ") into a known class.
func ParseHeatClass(s string) (HeatClass, error) {
	c := HeatClass(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := riseLimits[c]; !ok {
		return "", fmt.Errorf("%w: unknown heat-resistance class %q (want one of A, E, B, F, H)", ErrInvalidConfiguration, s)
	}
	return c, nil
}

// ResolveClass returns the rise limit and absolute maximum temperature of c.
func ResolveClass(c HeatClass) (Limits, error) {
	rise, ok := riseLimits[c]
	if !ok {
		return Limits{}, fmt.Errorf("%w: unknown heat-resistance class %q (want one of A, E, B, F, H)", ErrInvalidConfiguration, string(c))
	}
	return Limits{RiseLimit: rise, MaxTemperature: NominalAmbientC + rise}, nil
}
