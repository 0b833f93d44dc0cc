package mainfuncs

import (
	"github.com/banachtech/swaptions/data"
	"github.com/banachtech/swaptions/payoff"
	"gonum.org/v1/gonum/mat"
)

// workspace holds every buffer one pricing call needs. It is sized once
// from the swaption and reused for each block of trials, and it is never
// shared with another call.
type workspace struct {
	steps   int
	factors int
	block   int

	loadings   *mat.Dense // factors x (steps-1)
	drifts     *mat.Dense // factors x (steps-1)
	totalDrift []float64  // steps-1
	forward    []float64  // steps
	path       []float64  // steps x steps*block
	z          []float64  // factors x steps*block, raw draws
	shocks     []float64  // factors x steps*block, scaled by sqrt(dt)
	payoffs    []float64  // block
	buf        payoff.Buffers
}

func newWorkspace(spec *data.SwaptionSpec, swapLength, block int) *workspace {
	steps, factors := spec.NumSteps, spec.NumFactors

	loadings := mat.NewDense(factors, steps-1, nil)
	for k, row := range spec.Factors {
		loadings.SetRow(k, row)
	}

	return &workspace{
		steps:      steps,
		factors:    factors,
		block:      block,
		loadings:   loadings,
		drifts:     mat.NewDense(factors, steps-1, nil),
		totalDrift: make([]float64, steps-1),
		forward:    make([]float64, steps),
		path:       make([]float64, steps*steps*block),
		z:          make([]float64, factors*steps*block),
		shocks:     make([]float64, factors*steps*block),
		payoffs:    make([]float64, block),
		buf: payoff.Buffers{
			Rates:      make([]float64, steps*block),
			Discount:   make([]float64, steps*block),
			SwapRates:  make([]float64, swapLength*block),
			SwapFactor: make([]float64, swapLength*block),
			Exp:        make([]float64, (steps-1)*block),
			Column:     make([]float64, swapLength),
		},
	}
}
