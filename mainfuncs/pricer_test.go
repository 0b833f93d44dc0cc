package mainfuncs

import (
	"math"
	"testing"

	"github.com/banachtech/swaptions/config"
	"github.com/banachtech/swaptions/data"
	"github.com/banachtech/swaptions/logging"
	"github.com/banachtech/swaptions/payoff"
	"github.com/banachtech/swaptions/util"
	"github.com/stretchr/testify/require"
)

// Strike-zero value of the reference swaption: the payoff 1-P(1,3) is a
// traded claim worth P(0,1)-P(0,3) on the initial curve.
var referencePrice = math.Exp(-0.105) - math.Exp(-0.375)

func engine(trials int) config.Engine {
	return config.Engine{
		Trials:    trials,
		BlockSize: config.DefaultBlockSize,
		Seed:      config.DefaultSeed,
		Sampler:   config.DefaultSampler,
	}
}

func referenceSpec(strike float64) *data.SwaptionSpec {
	spec := data.Swaptions(1)[0].Spec
	spec.Strike = strike
	return &spec
}

func TestPriceReferenceValue(t *testing.T) {
	p := NewPricer(engine(100000), logging.Discard())
	res, err := p.Price(referenceSpec(0))
	require.NoError(t, err)
	require.InDelta(t, referencePrice, res.MeanPrice, 0.0005)
	require.Greater(t, res.StdError, 0.0)
	require.Less(t, res.StdError, 0.001)
}

func TestPriceInverseSampler(t *testing.T) {
	cfg := engine(50000)
	cfg.Sampler = "inverse"
	res, err := NewPricer(cfg, logging.Discard()).Price(referenceSpec(0))
	require.NoError(t, err)
	require.InDelta(t, referencePrice, res.MeanPrice, 0.001)
}

func TestPriceDeterministic(t *testing.T) {
	p := NewPricer(engine(4096), logging.Discard())
	spec := referenceSpec(0.05)
	r1, err := p.Price(spec)
	require.NoError(t, err)
	r2, err := p.Price(spec)
	require.NoError(t, err)
	require.Equal(t, r1, r2)
}

func TestPriceIndependentOfBlockSize(t *testing.T) {
	spec := referenceSpec(0.1)
	var prices []float64
	for _, block := range []int{1, 7, 16, 64} {
		cfg := engine(1000)
		cfg.BlockSize = block
		res, err := NewPricer(cfg, logging.Discard()).Price(spec)
		require.NoError(t, err)
		prices = append(prices, res.MeanPrice)
	}
	for _, p := range prices[1:] {
		require.InDelta(t, prices[0], p, 1e-12)
	}
}

func TestPriceConvergence(t *testing.T) {
	spec := referenceSpec(0)
	r1, err := NewPricer(engine(8192), logging.Discard()).Price(spec)
	require.NoError(t, err)
	r4, err := NewPricer(engine(4*8192), logging.Discard()).Price(spec)
	require.NoError(t, err)

	ratio := r4.StdError / r1.StdError
	require.InDelta(t, 0.5, ratio, 0.05)
}

func TestPriceStrikeMonotone(t *testing.T) {
	p := NewPricer(engine(2048), logging.Discard())

	atZero, err := p.Price(referenceSpec(0))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		strike := util.RandomFloat(0.001, 1)
		res, err := p.Price(referenceSpec(strike))
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.MeanPrice, 0.0)
		require.GreaterOrEqual(t, res.StdError, 0.0)
		require.GreaterOrEqual(t, atZero.MeanPrice, res.MeanPrice, "strike %v", strike)
	}
}

func TestPriceRandomCurves(t *testing.T) {
	p := NewPricer(engine(512), logging.Discard())
	for i := 0; i < 5; i++ {
		spec := referenceSpec(util.RandomFloat(0, 0.2))
		spec.Yield = util.RandomCurve(spec.NumSteps+1, 0.01, 0.15)

		r1, err := p.Price(spec)
		require.NoError(t, err)
		r2, err := p.Price(spec)
		require.NoError(t, err)
		require.Equal(t, r1, r2)
		require.GreaterOrEqual(t, r1.MeanPrice, 0.0)
		require.GreaterOrEqual(t, r1.StdError, 0.0)
	}
}

func TestPriceErrors(t *testing.T) {
	p := NewPricer(engine(64), logging.Discard())

	for _, test := range []struct {
		name   string
		mutate func(s *data.SwaptionSpec)
		want   error
	}{
		{name: "CURVE_LENGTH", mutate: func(s *data.SwaptionSpec) { s.Yield = s.Yield[1:] }, want: data.ErrDimension},
		{name: "FACTOR_ROWS", mutate: func(s *data.SwaptionSpec) { s.NumFactors = 2 }, want: data.ErrDimension},
		{name: "TOO_MANY_STEPS", mutate: func(s *data.SwaptionSpec) {
			s.NumSteps = MaxSteps + 1
			s.Yield = data.YieldCurve(s.NumSteps)
			for k := range s.Factors {
				s.Factors[k] = make([]float64, s.NumSteps-1)
			}
		}, want: data.ErrDimension},
		{name: "NO_CASHFLOWS", mutate: func(s *data.SwaptionSpec) { s.Maturity = 5.5 }, want: payoff.ErrNoCashflows},
		{name: "SWAP_TOO_LONG", mutate: func(s *data.SwaptionSpec) { s.Tenor = 10 }, want: payoff.ErrSchedule},
	} {
		t.Run(test.name, func(t *testing.T) {
			spec := referenceSpec(0)
			test.mutate(spec)
			_, err := p.Price(spec)
			require.ErrorIs(t, err, test.want)
		})
	}

	t.Run("HALF_STEP_MATURITY", func(t *testing.T) {
		spec := referenceSpec(0)
		spec.Maturity = 1.25
		res, err := p.Price(spec)
		require.NoError(t, err)
		require.Greater(t, res.MeanPrice, 0.0)
	})

	t.Run("BAD_SAMPLER", func(t *testing.T) {
		cfg := engine(64)
		cfg.Sampler = "sobol"
		_, err := NewPricer(cfg, logging.Discard()).Price(referenceSpec(0))
		require.Error(t, err)
	})
}
