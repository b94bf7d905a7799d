package frontier

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Comparator evaluates a user-supplied target portfolio with the same
// evaluator the estimator uses, so its metrics are directly comparable to
// the simulated cloud. Unlike the sampler's internally generated vectors,
// target weights come from user input (typically a parsed CSV), so every
// entry is validated and errors name the offending ticker.
type Comparator struct {
	evaluator *Evaluator
	log       zerolog.Logger
}

// NewComparator creates a comparator.
func NewComparator(log zerolog.Logger) *Comparator {
	return &Comparator{
		evaluator: NewEvaluator(),
		log:       log.With().Str("component", "comparator").Logger(),
	}
}

// Compare evaluates the ticker→weight mapping against stats. Tickers
// outside the statistics' universe are rejected; universe tickers absent
// from the mapping count as weight 0. The assembled vector must satisfy
// the same invariants as any other weight vector.
func (c *Comparator) Compare(target map[string]float64, stats *ReturnStatistics, riskFreeRate float64) (*SampledPortfolio, error) {
	if len(target) == 0 {
		return nil, fmt.Errorf("%w: empty target portfolio", ErrInvalidWeights)
	}

	index := make(map[string]int, stats.AssetCount())
	for i, symbol := range stats.Symbols {
		index[symbol] = i
	}

	weights := make([]float64, stats.AssetCount())
	for ticker, weight := range target {
		i, ok := index[ticker]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no price history in this analysis",
				ErrInvalidWeights, ticker)
		}
		if weight < 0 {
			return nil, fmt.Errorf("%w: negative weight %.6f for %s",
				ErrInvalidWeights, weight, ticker)
		}
		weights[i] = weight
	}

	metrics, err := c.evaluator.Evaluate(weights, stats, riskFreeRate)
	if err != nil {
		return nil, err
	}

	c.log.Debug().
		Int("assets", len(target)).
		Float64("expected_return", metrics.ExpectedReturn).
		Float64("risk", metrics.Risk).
		Float64("sharpe_ratio", metrics.SharpeRatio).
		Msg("Evaluated target portfolio")

	return &SampledPortfolio{Weights: weights, Metrics: metrics}, nil
}
