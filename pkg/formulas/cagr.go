package formulas

import "math"

// CAGR calculates the compound annual growth rate from the first and last
// price of a series.
//
// Formula:
//
//	CAGR = (final / initial)^(1 / years) - 1
//	years = observations / periodsPerYear
//
// Args:
//
//	prices: Ordered price series (ascending dates)
//	periodsPerYear: Number of observations per year (252 daily, 12 monthly)
//
// Returns:
//
//	CAGR or nil when the series is too short or starts at a non-positive price
func CAGR(prices []float64, periodsPerYear int) *float64 {
	if len(prices) < 2 || periodsPerYear < 1 {
		return nil
	}

	initial := prices[0]
	final := prices[len(prices)-1]
	if initial <= 0 || final <= 0 {
		return nil
	}

	years := float64(len(prices)) / float64(periodsPerYear)
	if years == 0 {
		return nil
	}

	cagr := math.Pow(final/initial, 1.0/years) - 1.0
	return &cagr
}
