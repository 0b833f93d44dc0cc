package payoff

import (
	"errors"
	"fmt"
	"math"

	"github.com/banachtech/swaptions/utils"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNoCashflows is returned when no curve points remain after exercise.
	ErrNoCashflows = errors.New("swaption has no cashflows after exercise")
	// ErrSchedule is returned when the payment schedule does not fit the grid.
	ErrSchedule = errors.New("invalid swap schedule")
)

// Swaption is a payer swaption laid out on the simulation grid.
type Swaption struct {
	Strike        float64 // continuously compounded
	Interval      float64
	ExerciseIndex int
	SwapLength    int // curve points left at exercise
	TenorPoints   int
	FreqRatio     int
	Cashflows     []float64 // fixed leg per unit notional, indexed by grid point after exercise
	Weights       []float64 // accrual at each payment date, zero elsewhere
}

// NewSwaption places a swaption on a grid of steps points spaced dt apart.
// A non-zero compounding is the compounding period of the quoted strike.
func NewSwaption(strike, compounding, maturity, tenor, interval, dt float64, steps int) (*Swaption, error) {
	if maturity < 0 {
		return nil, fmt.Errorf("%w: negative maturity %v", ErrSchedule, maturity)
	}
	s := &Swaption{
		Interval:      interval,
		ExerciseIndex: utils.RoundIndex(maturity / dt),
		TenorPoints:   utils.RoundIndex(tenor / dt),
		FreqRatio:     utils.RoundIndex(interval / dt),
	}
	// Rounded separately, exercise and remaining length can overrun the
	// grid by one point on a half-step maturity.
	s.SwapLength = min(utils.RoundIndex(float64(steps)-maturity/dt), steps-s.ExerciseIndex)
	if s.SwapLength <= 0 {
		return nil, fmt.Errorf("%w: maturity %v is beyond the %v year grid", ErrNoCashflows, maturity, float64(steps)*dt)
	}
	if s.FreqRatio <= 0 || s.TenorPoints <= 0 {
		return nil, fmt.Errorf("%w: tenor %v and payment interval %v must span at least one step of %v", ErrSchedule, tenor, interval, dt)
	}
	if s.TenorPoints%s.FreqRatio != 0 {
		return nil, fmt.Errorf("%w: tenor %v is not a whole number of payment intervals %v", ErrSchedule, tenor, interval)
	}
	if s.TenorPoints > s.SwapLength-1 {
		return nil, fmt.Errorf("%w: swap ends %d steps after exercise but only %d remain", ErrSchedule, s.TenorPoints, s.SwapLength-1)
	}

	if compounding == 0 {
		s.Strike = strike
	} else {
		if 1+strike*compounding <= 0 {
			return nil, fmt.Errorf("%w: strike %v cannot be compounded every %v years", ErrSchedule, strike, compounding)
		}
		s.Strike = math.Log(1+strike*compounding) / compounding
	}

	coupon := math.Exp(s.Strike*interval) - 1
	s.Cashflows = make([]float64, s.SwapLength)
	s.Weights = make([]float64, s.SwapLength)
	for i := s.FreqRatio; i <= s.TenorPoints; i += s.FreqRatio {
		s.Cashflows[i] = coupon
		s.Weights[i] = interval
	}
	return s, nil
}

// DiscountFactors compounds a block of rate paths into discount factors,
// df[i*block+b] = prod_{j<i} exp(-rates[j*block+b]*dt). The exponentials
// for the whole block are computed into scratch first.
func DiscountFactors(df, rates, scratch []float64, n, block int, dt float64) {
	m := (n - 1) * block
	for j := 0; j < m; j++ {
		scratch[j] = -rates[j] * dt
	}
	for j := 0; j < m; j++ {
		scratch[j] = math.Exp(scratch[j])
	}
	for b := 0; b < block; b++ {
		df[b] = 1.0
	}
	for i := 1; i < n; i++ {
		for b := 0; b < block; b++ {
			df[i*block+b] = df[(i-1)*block+b] * scratch[(i-1)*block+b]
		}
	}
}

// Buffers are the block-sized work areas Evaluate reads and writes.
type Buffers struct {
	Rates      []float64 // steps*block
	Discount   []float64 // steps*block
	SwapRates  []float64 // swapLength*block
	SwapFactor []float64 // swapLength*block
	Exp        []float64 // (steps-1)*block
	Column     []float64 // swapLength
}

// SwapRate returns the par swap rate and the annuity for trial b given the
// discount factors seen from the exercise date.
func (s *Swaption) SwapRate(swapDF []float64, b, block int, column []float64) (rate, annuity float64) {
	for i := range column {
		column[i] = swapDF[i*block+b]
	}
	annuity = floats.Dot(s.Weights, column)
	rate = (1 - column[s.TenorPoints]) / annuity
	return rate, annuity
}

// Payoff is the exercise value of the payer swaption for one trial:
// the excess of the swap rate over the fixed rate, paid on the annuity.
func (s *Swaption) Payoff(swapDF []float64, b, block int, column []float64) float64 {
	rate, annuity := s.SwapRate(swapDF, b, block, column)
	fixed := floats.Dot(s.Cashflows, column) / annuity
	return math.Max(rate-fixed, 0) * annuity
}

// Evaluate turns a block of simulated curves into discounted payoffs, one
// per trial, written to out.
func (s *Swaption) Evaluate(out, path []float64, buf *Buffers, steps, block int, dt float64) {
	row := steps * block

	// Money market account from the shortest forward at each step.
	for t := 0; t < steps; t++ {
		copy(buf.Rates[t*block:(t+1)*block], path[t*row:t*row+block])
	}
	DiscountFactors(buf.Discount, buf.Rates, buf.Exp, steps, block, dt)

	// The curve at exercise prices the swap.
	copy(buf.SwapRates[:s.SwapLength*block], path[s.ExerciseIndex*row:s.ExerciseIndex*row+s.SwapLength*block])
	DiscountFactors(buf.SwapFactor, buf.SwapRates, buf.Exp, s.SwapLength, block, dt)

	for b := 0; b < block; b++ {
		out[b] = s.Payoff(buf.SwapFactor, b, block, buf.Column) * buf.Discount[s.ExerciseIndex*block+b]
	}
}
