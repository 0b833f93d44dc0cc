package mc

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler selects how standard normal variates are produced from the
// uniform stream.
type Sampler string

const (
	// Ziggurat draws normals directly from the source.
	Ziggurat Sampler = "ziggurat"
	// Inverse maps uniform draws through the inverse normal CDF.
	Inverse Sampler = "inverse"
)

// DefaultSeed makes repeated runs reproducible.
const DefaultSeed uint64 = 100

// NormalGenerator fills shock tensors with independent standard normals.
// It is not safe for concurrent use; every pricing call owns its own.
type NormalGenerator struct {
	sampler Sampler
	normal  distuv.Normal
	uniform distuv.Uniform
}

// NewNormalGenerator seeds a generator. The same seed and sampler always
// produce the same sequence.
func NewNormalGenerator(seed uint64, sampler Sampler) (*NormalGenerator, error) {
	src := rand.NewSource(seed)
	switch sampler {
	case Ziggurat, Inverse:
	default:
		return nil, fmt.Errorf("unknown sampler %q", sampler)
	}
	return &NormalGenerator{
		sampler: sampler,
		normal:  distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: src},
		uniform: distuv.Uniform{Min: 0.0, Max: 1.0, Src: src},
	}, nil
}

// Draw returns one standard normal variate.
func (g *NormalGenerator) Draw() float64 {
	if g.sampler == Ziggurat {
		return g.normal.Rand()
	}
	u := g.uniform.Rand()
	for u == 0 {
		u = g.uniform.Rand()
	}
	return distuv.UnitNormal.Quantile(u)
}

// Fill writes a factors x steps x block tensor of draws into z, indexed
// z[(k*steps+t)*block+b]. Step 0 is the initial curve and gets no shock.
// Trials are drawn one after another so a trial consumes a contiguous
// stretch of the stream.
func (g *NormalGenerator) Fill(z []float64, factors, steps, block int) {
	for k := 0; k < factors; k++ {
		for b := 0; b < block; b++ {
			z[k*steps*block+b] = 0
		}
	}
	for b := 0; b < block; b++ {
		for t := 1; t < steps; t++ {
			for k := 0; k < factors; k++ {
				z[(k*steps+t)*block+b] = g.Draw()
			}
		}
	}
}
