package utils

// RoundIndex maps a year fraction already divided by the step length onto
// the nearest grid index. Plain int conversion truncates, so 0.999 would
// become 0 instead of 1.
func RoundIndex(x float64) int {
	return int(x + 0.5)
}

// StepLength returns the length in years of one discretization step.
func StepLength(years float64, steps int) float64 {
	return years / float64(steps)
}
