package thermal

const lossFactorSpeedThreshold = 1000.0 // rpm

// LossFactor returns the ratio of constant to variable losses used by the
// equivalent-power formulas. Slow machines (<1000 rpm) use 0.5, the rest 0.7.
func LossFactor(speedRPM float64) float64 {
	if speedRPM < lossFactorSpeedThreshold {
		return 0.5
	}
	return 0.7
}
