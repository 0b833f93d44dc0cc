package mainfuncs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/banachtech/swaptions/config"
	"github.com/banachtech/swaptions/data"
	"github.com/banachtech/swaptions/mc"
	"github.com/banachtech/swaptions/payoff"
	"github.com/banachtech/swaptions/utils"
)

// MaxSteps bounds the curve discretization, the path buffer grows with
// its square.
const MaxSteps = 1024

// PriceFunc prices one swaption.
type PriceFunc func(spec *data.SwaptionSpec) (data.SwaptionResult, error)

// Pricer runs the HJM Monte Carlo simulation for one swaption at a time.
// It holds only immutable configuration and can be used from many
// goroutines at once.
type Pricer struct {
	cfg    config.Engine
	logger *slog.Logger
}

// NewPricer creates a pricer.
func NewPricer(cfg config.Engine, logger *slog.Logger) *Pricer {
	return &Pricer{cfg: cfg, logger: logger}
}

// Price simulates cfg.Trials forward-curve paths in blocks of
// cfg.BlockSize and returns the mean discounted payoff and its standard
// error. Every call starts the random stream from the configured seed.
func (p *Pricer) Price(spec *data.SwaptionSpec) (data.SwaptionResult, error) {
	start := time.Now()
	if err := spec.Validate(); err != nil {
		return data.SwaptionResult{}, err
	}
	if spec.NumSteps > MaxSteps {
		return data.SwaptionResult{}, fmt.Errorf("%w: swaption %d has %d steps, at most %d supported", data.ErrDimension, spec.ID, spec.NumSteps, MaxSteps)
	}
	if p.cfg.Trials < 1 || p.cfg.BlockSize < 1 {
		return data.SwaptionResult{}, fmt.Errorf("need positive trials and block size, got %d and %d", p.cfg.Trials, p.cfg.BlockSize)
	}

	steps, factors, block := spec.NumSteps, spec.NumFactors, p.cfg.BlockSize
	dt := utils.StepLength(spec.Years, steps)

	sw, err := payoff.NewSwaption(spec.Strike, spec.Compounding, spec.Maturity, spec.Tenor, spec.PaymentInterval, dt, steps)
	if err != nil {
		return data.SwaptionResult{}, fmt.Errorf("swaption %d: %w", spec.ID, err)
	}
	gen, err := mc.NewNormalGenerator(p.cfg.Seed, mc.Sampler(p.cfg.Sampler))
	if err != nil {
		return data.SwaptionResult{}, err
	}

	ws := newWorkspace(spec, sw.SwapLength, block)
	if err := mc.YieldToForward(ws.forward, spec.Yield); err != nil {
		return data.SwaptionResult{}, fmt.Errorf("swaption %d: %w", spec.ID, err)
	}
	mc.Drifts(ws.totalDrift, ws.drifts, ws.loadings, dt)

	var est mc.Estimator
	for done := 0; done < p.cfg.Trials; done += block {
		gen.Fill(ws.z, factors, steps, block)
		mc.ScaleShocks(ws.shocks, ws.z, dt)
		mc.SimPathForward(ws.path, ws.forward, ws.totalDrift, ws.loadings, ws.shocks, steps, block, dt)
		sw.Evaluate(ws.payoffs, ws.path, &ws.buf, steps, block, dt)

		n := min(block, p.cfg.Trials-done)
		est.AddBlock(ws.payoffs[:n])
	}

	res := data.SwaptionResult{MeanPrice: est.Mean(), StdError: est.StdError()}
	p.logger.Debug("swaption priced",
		"id", spec.ID,
		"strike", spec.Strike,
		"trials", est.Count(),
		"price", res.MeanPrice,
		"std_error", res.StdError,
		"elapsed", time.Since(start),
	)
	return res, nil
}
