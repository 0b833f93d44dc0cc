package mainfuncs

import (
	"fmt"
	"io"

	"github.com/banachtech/swaptions/data"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WriteResults prints one line per swaption in slice order and returns the
// number of swaptions that failed.
func WriteResults(w io.Writer, swaptions []data.Swaption) (int, error) {
	failed := 0
	for i := range swaptions {
		s := &swaptions[i]
		var err error
		if s.Err != nil {
			failed++
			_, err = fmt.Fprintf(w, "Swaption%d: [Error: %v]\n", s.Spec.ID, s.Err)
		} else {
			_, err = fmt.Fprintf(w, "Swaption%d: [SwaptionPrice: %.10f StdError: %.10f]\n", s.Spec.ID, s.Result.MeanPrice, s.Result.StdError)
		}
		if err != nil {
			return failed, err
		}
	}
	return failed, nil
}

// Summary describes the priced swaptions of a run.
type Summary struct {
	Priced int
	Failed int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes cross-sectional statistics of the successful prices.
func Summarize(swaptions []data.Swaption) Summary {
	var prices []float64
	var sum Summary
	for i := range swaptions {
		if swaptions[i].Err != nil {
			sum.Failed++
			continue
		}
		prices = append(prices, swaptions[i].Result.MeanPrice)
	}
	sum.Priced = len(prices)
	switch len(prices) {
	case 0:
		return sum
	case 1:
		sum.Mean = prices[0]
	default:
		sum.Mean, sum.StdDev = stat.MeanStdDev(prices, nil)
	}
	sum.Min, sum.Max = floats.Min(prices), floats.Max(prices)
	return sum
}
