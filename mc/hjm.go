package mc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// YieldToForward converts zero yields on the grid into discrete forward
// rates, so that the sum of the first i+1 forwards equals (i+1)*yield[i].
func YieldToForward(forward, yield []float64) error {
	if len(forward) > len(yield) {
		return fmt.Errorf("forward curve has %d points but yield curve only %d", len(forward), len(yield))
	}
	if len(forward) == 0 {
		return nil
	}
	forward[0] = yield[0]
	for i := 1; i < len(forward); i++ {
		forward[i] = float64(i+1)*yield[i] - float64(i)*yield[i-1]
	}
	return nil
}

// Drifts fills drifts (factors x tenors) with the no-arbitrage drift of
// each factor and total with their sum across factors. For every factor the
// drifts up to tenor j add up to dt/2 times the squared cumulative
// volatility, which keeps discounted bond prices martingales.
func Drifts(total []float64, drifts, factors *mat.Dense, dt float64) {
	nf, nt := factors.Dims()
	for k := 0; k < nf; k++ {
		cum := 0.0
		sum := 0.0
		for j := 0; j < nt; j++ {
			cum += factors.At(k, j)
			d := 0.5*dt*cum*cum - sum
			drifts.Set(k, j, d)
			sum += d
		}
	}
	for j := 0; j < nt; j++ {
		total[j] = 0
		for k := 0; k < nf; k++ {
			total[j] += drifts.At(k, j)
		}
	}
}

// ScaleShocks writes sqrt(dt)*z into dst.
func ScaleShocks(dst, z []float64, dt float64) {
	s := math.Sqrt(dt)
	for i, v := range z {
		dst[i] = s * v
	}
}

// SimPathForward evolves a block of forward curves. path is steps rows of
// steps*block values, path[t*steps*block + l*block + b] being the forward
// at time step t for remaining tenor index l in trial b. Row 0 is the
// initial curve. Each step the curve loses its longest point; values past
// the end of the curve are zero.
func SimPathForward(path, forward, total []float64, factors *mat.Dense, shocks []float64, steps, block int, dt float64) {
	nf, _ := factors.Dims()
	raw := factors.RawMatrix()
	row := steps * block

	for l := 0; l < steps; l++ {
		for b := 0; b < block; b++ {
			path[l*block+b] = forward[l]
		}
	}
	for t := 1; t < steps; t++ {
		prev := path[(t-1)*row : t*row]
		cur := path[t*row : (t+1)*row]
		last := steps - 1 - t
		for l := 0; l <= last; l++ {
			mu := total[l] * dt
			for b := 0; b < block; b++ {
				shock := 0.0
				for k := 0; k < nf; k++ {
					shock += raw.Data[k*raw.Stride+l] * shocks[(k*steps+t)*block+b]
				}
				cur[l*block+b] = prev[(l+1)*block+b] + mu + shock
			}
		}
		for i := (last + 1) * block; i < row; i++ {
			cur[i] = 0
		}
	}
}
