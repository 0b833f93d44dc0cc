package data

import (
	"errors"
	"fmt"
)

// ErrDimension is returned when the curve or the factor table of a swaption
// does not match its declared discretization.
var ErrDimension = errors.New("inconsistent swaption dimensions")

// SwaptionSpec holds the immutable inputs of one European swaption.
// Factors is row-major by factor: NumFactors rows of NumSteps-1 loadings.
type SwaptionSpec struct {
	ID              int         `json:"id"`
	Strike          float64     `json:"strike"`
	Compounding     float64     `json:"compounding"`
	Maturity        float64     `json:"maturity" binding:"gt=0"`
	Tenor           float64     `json:"tenor" binding:"gt=0"`
	PaymentInterval float64     `json:"payment_interval" binding:"gt=0"`
	NumSteps        int         `json:"num_steps" binding:"min=2"`
	Years           float64     `json:"years" binding:"gt=0"`
	NumFactors      int         `json:"num_factors" binding:"min=1"`
	Yield           []float64   `json:"yield" binding:"required"`
	Factors         [][]float64 `json:"factors" binding:"required"`
}

// SwaptionResult is the Monte Carlo estimate for one swaption.
type SwaptionResult struct {
	MeanPrice float64 `json:"price"`
	StdError  float64 `json:"std_error"`
}

// Swaption is the record a worker owns while pricing: the inputs, the
// estimate, and the error that prevented one if any.
type Swaption struct {
	Spec   SwaptionSpec
	Result SwaptionResult
	Err    error
}

// Validate checks the curve and factor table against NumSteps and NumFactors.
func (s *SwaptionSpec) Validate() error {
	if s.NumSteps < 2 {
		return fmt.Errorf("%w: swaption %d has %d steps, need at least 2", ErrDimension, s.ID, s.NumSteps)
	}
	if s.NumFactors < 1 {
		return fmt.Errorf("%w: swaption %d has %d factors", ErrDimension, s.ID, s.NumFactors)
	}
	if s.Years <= 0 {
		return fmt.Errorf("%w: swaption %d has non-positive horizon %v", ErrDimension, s.ID, s.Years)
	}
	if len(s.Yield) != s.NumSteps+1 {
		return fmt.Errorf("%w: swaption %d yield curve has %d points, want %d", ErrDimension, s.ID, len(s.Yield), s.NumSteps+1)
	}
	if len(s.Factors) != s.NumFactors {
		return fmt.Errorf("%w: swaption %d has %d factor rows, want %d", ErrDimension, s.ID, len(s.Factors), s.NumFactors)
	}
	for k, row := range s.Factors {
		if len(row) != s.NumSteps-1 {
			return fmt.Errorf("%w: swaption %d factor %d has %d loadings, want %d", ErrDimension, s.ID, k, len(row), s.NumSteps-1)
		}
	}
	return nil
}
