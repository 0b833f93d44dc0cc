package mc

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Estimator accumulates payoff samples block by block. Only the running
// count, mean and sum of squared deviations are kept, so the full sample
// never has to be resident.
type Estimator struct {
	n    float64
	mean float64
	m2   float64
}

// Add folds one sample into the estimate (Welford's update).
func (e *Estimator) Add(x float64) {
	e.n++
	delta := x - e.mean
	e.mean += delta / e.n
	e.m2 += delta * (x - e.mean)
}

// AddBlock folds a block of samples into the estimate by merging the block
// moments with the running ones.
func (e *Estimator) AddBlock(x []float64) {
	switch len(x) {
	case 0:
		return
	case 1:
		e.Add(x[0])
		return
	}
	nb := float64(len(x))
	mb, vb := stat.MeanVariance(x, nil)
	m2b := vb * (nb - 1)

	n := e.n + nb
	delta := mb - e.mean
	e.mean += delta * nb / n
	e.m2 += m2b + delta*delta*e.n*nb/n
	e.n = n
}

// Count returns the number of samples seen.
func (e *Estimator) Count() int {
	return int(e.n)
}

// Mean returns the sample mean.
func (e *Estimator) Mean() float64 {
	return e.mean
}

// StdError returns the sample standard deviation divided by sqrt(n).
func (e *Estimator) StdError() float64 {
	if e.n < 2 {
		return 0
	}
	v := e.m2 / (e.n - 1)
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v) / math.Sqrt(e.n)
}
