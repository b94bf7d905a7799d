package formulas

// MaxDrawdown calculates the maximum peak-to-trough decline of a price
// series.
//
// Formula:
//
//	Drawdown = (Peak - Price) / Peak
//	Max Drawdown = maximum drawdown over the series
//
// Returns the drawdown as a positive fraction (0.25 = 25% loss from peak)
// or nil when the series is too short.
func MaxDrawdown(prices []float64) *float64 {
	if len(prices) < 2 {
		return nil
	}

	maxDrawdown := 0.0
	peak := prices[0]

	for _, price := range prices {
		if price > peak {
			peak = price
		}
		if peak > 0 {
			if drawdown := (peak - price) / peak; drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return &maxDrawdown
}
