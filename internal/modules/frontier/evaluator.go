package frontier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// WeightTolerance is the allowed deviation of a weight vector's sum from 1.
const WeightTolerance = 1e-6

// riskEpsilon absorbs floating-point noise in the quadratic form: variances
// in (-riskEpsilon, 0) are clamped to 0 instead of producing a NaN risk.
const riskEpsilon = 1e-12

// Evaluator computes portfolio-level metrics from a weight vector and
// precomputed return statistics. Evaluation is deterministic and free of
// shared state, so one evaluator may be used from many goroutines.
type Evaluator struct{}

// NewEvaluator creates an evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes expected return, risk and Sharpe ratio for the given
// weights. Weights must match the statistics' asset count, be non-negative
// and sum to 1 within WeightTolerance.
func (e *Evaluator) Evaluate(weights []float64, stats *ReturnStatistics, riskFreeRate float64) (PortfolioMetrics, error) {
	if err := e.ValidateWeights(weights, stats); err != nil {
		return PortfolioMetrics{}, err
	}

	expectedReturn := floats.Dot(weights, stats.MeanReturns)

	w := mat.NewVecDense(len(weights), weights)
	variance := mat.Inner(w, stats.Covariance, w)
	if variance < 0 {
		if variance < -riskEpsilon {
			// A genuinely negative quadratic form means the covariance
			// matrix is not PSD; real return data never produces this.
			return PortfolioMetrics{}, fmt.Errorf(
				"covariance matrix is not positive semi-definite (wᵀΣw = %g)", variance)
		}
		variance = 0
	}
	risk := math.Sqrt(variance)

	if risk == 0 {
		return PortfolioMetrics{}, fmt.Errorf("%w: Sharpe ratio undefined", ErrZeroRisk)
	}

	return PortfolioMetrics{
		ExpectedReturn: expectedReturn,
		Risk:           risk,
		SharpeRatio:    (expectedReturn - riskFreeRate) / risk,
	}, nil
}

// ValidateWeights checks the weight-vector invariants against the
// statistics' asset universe.
func (e *Evaluator) ValidateWeights(weights []float64, stats *ReturnStatistics) error {
	if len(weights) != stats.AssetCount() {
		return fmt.Errorf("%w: %d weights for %d assets",
			ErrInvalidWeights, len(weights), stats.AssetCount())
	}

	var sum float64
	for i, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %.6f for %s",
				ErrInvalidWeights, w, stats.Symbols[i])
		}
		sum += w
	}

	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %.8f, expected 1.0",
			ErrInvalidWeights, sum)
	}

	return nil
}
