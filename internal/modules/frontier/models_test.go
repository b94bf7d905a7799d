package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloud(points ...[2]float64) *FrontierResult {
	result := &FrontierResult{}
	for _, p := range points {
		result.Samples = append(result.Samples, SampledPortfolio{
			Metrics: PortfolioMetrics{Risk: p[0], ExpectedReturn: p[1]},
		})
	}
	result.MaxSharpe, result.MinRisk = selectExtremes(result.Samples)
	return result
}

func TestLeftEdge(t *testing.T) {
	result := cloud(
		[2]float64{0.10, 0.05},
		[2]float64{0.11, 0.06},
		[2]float64{0.15, 0.08},
		[2]float64{0.20, 0.10},
	)

	edge := result.LeftEdge(0.015)
	require.Len(t, edge, 2)
	assert.InDelta(t, 0.10, edge[0].Metrics.Risk, 1e-12)
	assert.InDelta(t, 0.11, edge[1].Metrics.Risk, 1e-12)
}

func TestLeftEdgeZeroThreshold(t *testing.T) {
	result := cloud(
		[2]float64{0.10, 0.05},
		[2]float64{0.15, 0.08},
	)

	// Zero (and negative, which clamps to zero) keeps only the min-risk
	// sample itself.
	assert.Len(t, result.LeftEdge(0), 1)
	assert.Len(t, result.LeftEdge(-1), 1)
}

func TestCurveKeepsBestReturnPerBucket(t *testing.T) {
	result := cloud(
		[2]float64{0.10, 0.05},
		[2]float64{0.105, 0.07}, // same bucket, better return
		[2]float64{0.30, 0.12},
	)

	curve := result.Curve(2)
	require.Len(t, curve, 2)
	assert.InDelta(t, 0.07, curve[0].Return, 1e-12)
	assert.InDelta(t, 0.12, curve[1].Return, 1e-12)
}

func TestCurveSkipsEmptyBuckets(t *testing.T) {
	result := cloud(
		[2]float64{0.10, 0.05},
		[2]float64{0.50, 0.15},
	)

	// Everything between the two clusters stays empty.
	curve := result.Curve(10)
	assert.Len(t, curve, 2)
}

func TestCurveDegenerateInputs(t *testing.T) {
	assert.Nil(t, (&FrontierResult{}).Curve(10))
	assert.Nil(t, cloud([2]float64{0.1, 0.05}).Curve(0))

	// Single risk level collapses to one point
	single := cloud([2]float64{0.2, 0.1}, [2]float64{0.2, 0.1})
	assert.Len(t, single.Curve(5), 1)
}

func TestSelectExtremesTieBreaks(t *testing.T) {
	a := SampledPortfolio{Metrics: PortfolioMetrics{ExpectedReturn: 0.08, Risk: 0.10, SharpeRatio: 0.5}}
	b := SampledPortfolio{Metrics: PortfolioMetrics{ExpectedReturn: 0.06, Risk: 0.06, SharpeRatio: 0.5}}
	c := SampledPortfolio{Metrics: PortfolioMetrics{ExpectedReturn: 0.07, Risk: 0.06, SharpeRatio: 0.4}}

	maxSharpe, minRisk := selectExtremes([]SampledPortfolio{a, b, c})

	// Sharpe tie between a and b goes to the lower-risk b.
	assert.Equal(t, b, maxSharpe)
	// Risk tie between b and c goes to the higher-return c.
	assert.Equal(t, c, minRisk)
}

func TestSelectExtremesKeepsEarlierOnFullTie(t *testing.T) {
	a := SampledPortfolio{Weights: []float64{1, 0}, Metrics: PortfolioMetrics{ExpectedReturn: 0.08, Risk: 0.10, SharpeRatio: 0.5}}
	b := SampledPortfolio{Weights: []float64{0, 1}, Metrics: PortfolioMetrics{ExpectedReturn: 0.08, Risk: 0.10, SharpeRatio: 0.5}}

	maxSharpe, minRisk := selectExtremes([]SampledPortfolio{a, b})
	assert.Equal(t, a.Weights, maxSharpe.Weights)
	assert.Equal(t, a.Weights, minRisk.Weights)
}
