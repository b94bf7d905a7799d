package frontier

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// PriceSeries holds aligned historical prices for a set of assets.
// Rows are observation dates in ascending order, columns are assets in
// the order of Symbols. All prices must be strictly positive and every
// asset must share the same observation dates.
type PriceSeries struct {
	Symbols []string
	Dates   []time.Time
	Prices  [][]float64 // Prices[row][col] = price of Symbols[col] on Dates[row]
}

// AssetCount returns the number of assets in the series.
func (s PriceSeries) AssetCount() int {
	return len(s.Symbols)
}

// ObservationCount returns the number of price observations per asset.
func (s PriceSeries) ObservationCount() int {
	return len(s.Dates)
}

// ReturnStatistics holds annualized return statistics derived once from a
// price series. Immutable after construction; safe to share across the
// estimator's workers.
type ReturnStatistics struct {
	Symbols     []string
	MeanReturns []float64     // Annualized mean return per asset
	Covariance  *mat.SymDense // Annualized covariance matrix (PSD)
	Periods     int           // Number of return periods in the source data
}

// AssetCount returns the number of assets covered by the statistics.
func (s *ReturnStatistics) AssetCount() int {
	return len(s.Symbols)
}

// PortfolioMetrics holds the evaluated metrics of one portfolio.
type PortfolioMetrics struct {
	ExpectedReturn float64 `json:"expected_return"`
	Risk           float64 `json:"risk"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
}

// SampledPortfolio pairs a weight vector with its evaluated metrics.
type SampledPortfolio struct {
	Weights []float64        `json:"weights"`
	Metrics PortfolioMetrics `json:"metrics"`
}

// FrontierResult holds the full simulated cloud for one analysis run plus
// the distinguished max-Sharpe and min-risk portfolios. Target is set by
// the caller when a user portfolio was supplied for comparison.
type FrontierResult struct {
	RunID     string             `json:"run_id"`
	Symbols   []string           `json:"symbols"`
	Samples   []SampledPortfolio `json:"samples"`
	MaxSharpe SampledPortfolio   `json:"max_sharpe"`
	MinRisk   SampledPortfolio   `json:"min_risk"`
	Target    *SampledPortfolio  `json:"target,omitempty"`
	Attempts  int                `json:"attempts"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
}

// LeftEdge returns the sampled portfolios whose risk lies within threshold
// of the minimum sampled risk, in sample order. This is the left-most edge
// of the simulated cloud.
func (r *FrontierResult) LeftEdge(threshold float64) []SampledPortfolio {
	if threshold < 0 {
		threshold = 0
	}

	edge := make([]SampledPortfolio, 0)
	for _, s := range r.Samples {
		if s.Metrics.Risk-r.MinRisk.Metrics.Risk <= threshold {
			edge = append(edge, s)
		}
	}
	return edge
}

// CurvePoint is one point of the extracted frontier boundary.
type CurvePoint struct {
	Risk   float64 `json:"risk"`
	Return float64 `json:"return"`
}

// Curve extracts the upper-left boundary of the cloud by bucketing samples
// into equal-width risk bins and keeping the best return per bin. Buckets
// with no samples are skipped, so the result has at most buckets points.
func (r *FrontierResult) Curve(buckets int) []CurvePoint {
	if buckets < 1 || len(r.Samples) == 0 {
		return nil
	}

	minRisk := r.MinRisk.Metrics.Risk
	maxRisk := minRisk
	for _, s := range r.Samples {
		if s.Metrics.Risk > maxRisk {
			maxRisk = s.Metrics.Risk
		}
	}

	width := (maxRisk - minRisk) / float64(buckets)
	if width == 0 {
		// All samples share one risk level
		return []CurvePoint{{Risk: minRisk, Return: r.MaxSharpe.Metrics.ExpectedReturn}}
	}

	best := make([]*CurvePoint, buckets)
	for _, s := range r.Samples {
		idx := int((s.Metrics.Risk - minRisk) / width)
		if idx >= buckets {
			idx = buckets - 1
		}
		if best[idx] == nil || s.Metrics.ExpectedReturn > best[idx].Return {
			best[idx] = &CurvePoint{Risk: s.Metrics.Risk, Return: s.Metrics.ExpectedReturn}
		}
	}

	curve := make([]CurvePoint, 0, buckets)
	for _, p := range best {
		if p != nil {
			curve = append(curve, *p)
		}
	}
	return curve
}
