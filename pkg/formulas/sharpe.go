package formulas

import "math"

// SharpeRatio calculates the annualized Sharpe ratio of a periodic return
// series.
//
// Formula:
//
//	Sharpe = (mean return - periodic risk-free rate) / StdDev of returns
//	Annualized: Sharpe × sqrt(periodsPerYear)
//
// Args:
//
//	returns: Periodic returns (daily, monthly, ...)
//	riskFreeRate: Annual risk-free rate as a decimal
//	periodsPerYear: Observations per year (252 daily, 12 monthly)
//
// Returns:
//
//	Annualized Sharpe ratio or nil when the series is too short or carries
//	no variance
func SharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 || periodsPerYear < 1 {
		return nil
	}

	stdDev := StdDev(returns)
	if stdDev == 0 {
		return nil
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	sharpe := (Mean(returns) - periodicRiskFree) / stdDev * math.Sqrt(float64(periodsPerYear))

	return &sharpe
}
