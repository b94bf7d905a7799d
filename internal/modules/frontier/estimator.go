package frontier

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// retryFactor bounds the total number of draws per run at
// retryFactor × numSamples, so a pathological universe (every draw
// degenerate or zero-risk) cannot loop forever.
const retryFactor = 10

// EstimateConfig configures one estimation run.
type EstimateConfig struct {
	NumSamples   int
	RiskFreeRate float64
	Seed         *int64 // nil seeds from the wall clock
	Workers      int    // evaluation workers, <= 0 uses GOMAXPROCS
}

// Estimator builds the simulated portfolio cloud by repeated random
// sampling and evaluation, then extracts the max-Sharpe and min-risk
// portfolios from it.
//
// The frontier is approximated by sampling, not by solving the quadratic
// program: accuracy scales with NumSamples. Callers needing the exact
// analytical frontier need a separate solver, which this module does not
// provide.
type Estimator struct {
	evaluator *Evaluator
	log       zerolog.Logger
}

// NewEstimator creates an estimator.
func NewEstimator(log zerolog.Logger) *Estimator {
	return &Estimator{
		evaluator: NewEvaluator(),
		log:       log.With().Str("component", "estimator").Logger(),
	}
}

// Estimate runs cfg.NumSamples successful sample evaluations against stats
// and returns the resulting cloud. Degenerate draws and zero-risk
// evaluations are discarded and replaced; if the retry budget is exhausted
// first, ErrInsufficientSamples is returned.
func (e *Estimator) Estimate(stats *ReturnStatistics, cfg EstimateConfig) (*FrontierResult, error) {
	if cfg.NumSamples < 1 {
		return nil, fmt.Errorf("%w: num_samples must be >= 1, got %d",
			ErrInvalidConfig, cfg.NumSamples)
	}

	start := time.Now()

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	sampler := NewSampler(seed)

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	budget := retryFactor * cfg.NumSamples
	attempts := 0

	// Draw the full batch up front. Weight generation stays sequential so
	// the logical sample order is fixed by the seed alone; evaluation is
	// parallelized below because samples are independent.
	weights := make([][]float64, 0, cfg.NumSamples)
	for len(weights) < cfg.NumSamples && attempts < budget {
		attempts++
		w, err := sampler.Sample(stats.AssetCount())
		if err != nil {
			if errors.Is(err, ErrDegenerateSample) {
				continue
			}
			return nil, err
		}
		weights = append(weights, w)
	}
	if len(weights) < cfg.NumSamples {
		return nil, fmt.Errorf("%w: %d of %d after %d draws",
			ErrInsufficientSamples, len(weights), cfg.NumSamples, attempts)
	}

	samples := make([]SampledPortfolio, cfg.NumSamples)
	failed := make([]bool, cfg.NumSamples)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range weights {
		i := i
		g.Go(func() error {
			metrics, err := e.evaluator.Evaluate(weights[i], stats, cfg.RiskFreeRate)
			if err != nil {
				if errors.Is(err, ErrZeroRisk) {
					failed[i] = true // replaced sequentially below
					return nil
				}
				return err
			}
			samples[i] = SampledPortfolio{Weights: weights[i], Metrics: metrics}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Replace zero-risk slots in index order so the result stays
	// deterministic under a fixed seed.
	for i := range samples {
		if !failed[i] {
			continue
		}
		if err := e.redraw(sampler, stats, cfg.RiskFreeRate, &samples[i], &attempts, budget); err != nil {
			return nil, err
		}
	}

	result := &FrontierResult{
		RunID:    uuid.New().String(),
		Symbols:  stats.Symbols,
		Samples:  samples,
		Attempts: attempts,
	}
	result.MaxSharpe, result.MinRisk = selectExtremes(samples)
	result.Elapsed = time.Since(start)

	e.log.Info().
		Str("run_id", result.RunID).
		Int("num_samples", cfg.NumSamples).
		Int("attempts", attempts).
		Int("workers", workers).
		Float64("max_sharpe", result.MaxSharpe.Metrics.SharpeRatio).
		Float64("min_risk", result.MinRisk.Metrics.Risk).
		Dur("elapsed", result.Elapsed).
		Msg("Frontier estimation complete")

	return result, nil
}

// redraw draws and evaluates replacements for one discarded slot until a
// draw succeeds or the attempt budget runs out.
func (e *Estimator) redraw(
	sampler *Sampler,
	stats *ReturnStatistics,
	riskFreeRate float64,
	slot *SampledPortfolio,
	attempts *int,
	budget int,
) error {
	for *attempts < budget {
		*attempts++
		w, err := sampler.Sample(stats.AssetCount())
		if err != nil {
			if errors.Is(err, ErrDegenerateSample) {
				continue
			}
			return err
		}
		metrics, err := e.evaluator.Evaluate(w, stats, riskFreeRate)
		if err != nil {
			if errors.Is(err, ErrZeroRisk) {
				continue
			}
			return err
		}
		*slot = SampledPortfolio{Weights: w, Metrics: metrics}
		return nil
	}
	return fmt.Errorf("%w: retry budget of %d draws exhausted",
		ErrInsufficientSamples, budget)
}

// selectExtremes picks the max-Sharpe and min-risk samples. Ties on Sharpe
// break toward lower risk, ties on risk break toward higher return, and
// remaining ties keep the earlier sample, so results are reproducible
// under a fixed seed.
func selectExtremes(samples []SampledPortfolio) (maxSharpe, minRisk SampledPortfolio) {
	maxSharpe = samples[0]
	minRisk = samples[0]

	for _, s := range samples[1:] {
		if s.Metrics.SharpeRatio > maxSharpe.Metrics.SharpeRatio ||
			(s.Metrics.SharpeRatio == maxSharpe.Metrics.SharpeRatio &&
				s.Metrics.Risk < maxSharpe.Metrics.Risk) {
			maxSharpe = s
		}
		if s.Metrics.Risk < minRisk.Metrics.Risk ||
			(s.Metrics.Risk == minRisk.Metrics.Risk &&
				s.Metrics.ExpectedReturn > minRisk.Metrics.ExpectedReturn) {
			minRisk = s
		}
	}
	return maxSharpe, minRisk
}
