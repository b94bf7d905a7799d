package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodReturns(t *testing.T) {
	returns := PeriodReturns([]float64{100, 110, 99})
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)
}

func TestPeriodReturnsShortSeries(t *testing.T) {
	assert.Empty(t, PeriodReturns([]float64{100}))
	assert.Empty(t, PeriodReturns(nil))
}

func TestMeanAndVariance(t *testing.T) {
	data := []float64{0.1, -0.1}
	assert.InDelta(t, 0.0, Mean(data), 1e-12)
	assert.InDelta(t, 0.02, Variance(data), 1e-12)
	assert.InDelta(t, math.Sqrt(0.02), StdDev(data), 1e-12)

	assert.Zero(t, Mean(nil))
	assert.Zero(t, Variance(nil))
	assert.Zero(t, StdDev(nil))
}

func TestAnnualizedVolatility(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02, -0.02}
	want := StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, want, AnnualizedVolatility(returns, 252), 1e-12)

	assert.Zero(t, AnnualizedVolatility(nil, 252))
	assert.Zero(t, AnnualizedVolatility(returns, 0))
}

func TestCorrelationAndCovariance(t *testing.T) {
	x := []float64{0.1, -0.1, 0.2, -0.2}
	y := []float64{-0.1, 0.1, -0.2, 0.2}

	assert.InDelta(t, -1.0, Correlation(x, y), 1e-9)
	assert.InDelta(t, -Variance(x), Covariance(x, y), 1e-9)

	// Mismatched lengths fall back to zero
	assert.Zero(t, Correlation(x, y[:2]))
	assert.Zero(t, Covariance(x, y[:2]))
}

func TestCAGR(t *testing.T) {
	// Doubling over exactly one year of daily observations
	prices := make([]float64, 252)
	for i := range prices {
		prices[i] = 100 * math.Pow(2, float64(i)/251)
	}

	cagr := CAGR(prices, 252)
	require.NotNil(t, cagr)
	assert.InDelta(t, 1.0, *cagr, 0.01)
}

func TestMaxDrawdown(t *testing.T) {
	// Peak 120, trough 90: 25% drawdown
	dd := MaxDrawdown([]float64{100, 120, 90, 110})
	require.NotNil(t, dd)
	assert.InDelta(t, 0.25, *dd, 1e-9)

	// Monotonic rise never draws down
	dd = MaxDrawdown([]float64{100, 110, 120})
	require.NotNil(t, dd)
	assert.Zero(t, *dd)

	assert.Nil(t, MaxDrawdown([]float64{100}))
}

func TestSharpeRatio(t *testing.T) {
	returns := []float64{0.01, -0.005, 0.02, 0.0, 0.015}

	sharpe := SharpeRatio(returns, 0.03, 252)
	require.NotNil(t, sharpe)

	want := (Mean(returns) - 0.03/252) / StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, want, *sharpe, 1e-9)
}

func TestSharpeRatioDegenerateInputs(t *testing.T) {
	assert.Nil(t, SharpeRatio([]float64{0.01}, 0.03, 252))
	assert.Nil(t, SharpeRatio(nil, 0.03, 252))
	// Constant returns carry no variance
	assert.Nil(t, SharpeRatio([]float64{0.01, 0.01, 0.01}, 0.03, 252))
	assert.Nil(t, SharpeRatio([]float64{0.01, 0.02}, 0.03, 0))
}

func TestCAGRDegenerateInputs(t *testing.T) {
	assert.Nil(t, CAGR([]float64{100}, 252))
	assert.Nil(t, CAGR(nil, 252))
	assert.Nil(t, CAGR([]float64{100, 110}, 0))
	assert.Nil(t, CAGR([]float64{0, 110}, 252))
}
