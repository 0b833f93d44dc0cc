package util

import "math/rand"

// RandomInt generates a random integer between min and max
func RandomInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// RandomFloat generates a random float in [min, max)
func RandomFloat(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

// RandomCurve generates n rates drawn uniformly from [lo, hi)
func RandomCurve(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = RandomFloat(lo, hi)
	}
	return out
}
