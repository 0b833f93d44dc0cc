package data

// Reference discretization shared by every generated swaption.
const (
	DefaultSteps    = 11
	DefaultYears    = 5.5
	DefaultFactors  = 3
	DefaultMaturity = 1.0
	DefaultTenor    = 2.0
	DefaultPayment  = 1.0
	baseRate        = 0.1
	rateIncrement   = 0.005
)

// Volatility loadings of the three reference factors: a flat level factor,
// an exponentially decaying one and a twist.
var referenceFactors = [DefaultFactors][DefaultSteps - 1]float64{
	{.01, .01, .01, .01, .01, .01, .01, .01, .01, .01},
	{.009048, .008187, .007408, .006703, .006065, .005488, .004966, .004493, .004066, .003679},
	{.001000, .000750, .000500, .000250, .000000, -.000250, -.000500, -.000750, -.001000, -.001250},
}

// Factors returns a fresh copy of the reference factor table.
func Factors() [][]float64 {
	out := make([][]float64, DefaultFactors)
	for k := range referenceFactors {
		out[k] = make([]float64, DefaultSteps-1)
		copy(out[k], referenceFactors[k][:])
	}
	return out
}

// YieldCurve returns steps+1 zero rates starting at 10% and rising 50bp per point.
func YieldCurve(steps int) []float64 {
	y := make([]float64, steps+1)
	y[0] = baseRate
	for j := 1; j <= steps; j++ {
		y[j] = y[j-1] + rateIncrement
	}
	return y
}

// Swaptions builds the reference portfolio of n swaptions with strikes i/n.
func Swaptions(n int) []Swaption {
	out := make([]Swaption, n)
	for i := range out {
		out[i].Spec = SwaptionSpec{
			ID:              i,
			Strike:          float64(i) / float64(n),
			Compounding:     0,
			Maturity:        DefaultMaturity,
			Tenor:           DefaultTenor,
			PaymentInterval: DefaultPayment,
			NumSteps:        DefaultSteps,
			Years:           DefaultYears,
			NumFactors:      DefaultFactors,
			Yield:           YieldCurve(DefaultSteps),
			Factors:         Factors(),
		}
	}
	return out
}
