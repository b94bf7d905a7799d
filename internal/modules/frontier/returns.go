package frontier

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/frontier/pkg/formulas"
)

// Annualization factors for the supported data frequencies.
const (
	PeriodsPerYearDaily   = 252 // Trading days per year
	PeriodsPerYearMonthly = 12
)

// StatisticsBuilder converts an aligned price series into annualized
// return statistics. The annualization factor is the number of return
// periods per year implied by the data frequency and must be supplied
// explicitly (252 for daily, 12 for monthly).
type StatisticsBuilder struct {
	periodsPerYear int
	log            zerolog.Logger
}

// NewStatisticsBuilder creates a statistics builder for the given data
// frequency.
func NewStatisticsBuilder(periodsPerYear int, log zerolog.Logger) (*StatisticsBuilder, error) {
	if periodsPerYear < 1 {
		return nil, fmt.Errorf("%w: annualization factor must be >= 1, got %d",
			ErrInvalidConfig, periodsPerYear)
	}
	return &StatisticsBuilder{
		periodsPerYear: periodsPerYear,
		log:            log.With().Str("component", "statistics_builder").Logger(),
	}, nil
}

// Build validates the price series and derives the annualized mean-return
// vector and covariance matrix from period-over-period returns.
func (b *StatisticsBuilder) Build(series PriceSeries) (*ReturnStatistics, error) {
	if err := b.validate(series); err != nil {
		return nil, err
	}

	numAssets := series.AssetCount()
	numPeriods := series.ObservationCount() - 1
	factor := float64(b.periodsPerYear)

	// Per-asset return columns: return[t] = (p[t+1] - p[t]) / p[t]
	returns := make([][]float64, numAssets)
	for col := 0; col < numAssets; col++ {
		prices := make([]float64, series.ObservationCount())
		for row := range series.Prices {
			prices[row] = series.Prices[row][col]
		}
		returns[col] = formulas.PeriodReturns(prices)
	}

	meanReturns := make([]float64, numAssets)
	for col := 0; col < numAssets; col++ {
		meanReturns[col] = stat.Mean(returns[col], nil) * factor
	}

	// Sample covariance, scaled linearly by the annualization factor
	// (variance of i.i.d. period returns scales with the period count).
	cov := mat.NewSymDense(numAssets, nil)
	for i := 0; i < numAssets; i++ {
		for j := i; j < numAssets; j++ {
			cov.SetSym(i, j, stat.Covariance(returns[i], returns[j], nil)*factor)
		}
	}

	b.log.Debug().
		Int("assets", numAssets).
		Int("periods", numPeriods).
		Int("periods_per_year", b.periodsPerYear).
		Msg("Built return statistics")

	return &ReturnStatistics{
		Symbols:     append([]string(nil), series.Symbols...),
		MeanReturns: meanReturns,
		Covariance:  cov,
		Periods:     numPeriods,
	}, nil
}

// validate checks the price-series invariants: at least two observations,
// identical row lengths, ascending dates, strictly positive prices.
func (b *StatisticsBuilder) validate(series PriceSeries) error {
	if series.AssetCount() == 0 {
		return fmt.Errorf("%w: no assets in series", ErrInsufficientData)
	}
	if series.ObservationCount() < 2 {
		return fmt.Errorf("%w: need at least 2 observations, got %d",
			ErrInsufficientData, series.ObservationCount())
	}
	if len(series.Prices) != series.ObservationCount() {
		return fmt.Errorf("%w: %d dates but %d price rows",
			ErrMisalignedSeries, series.ObservationCount(), len(series.Prices))
	}

	for row, prices := range series.Prices {
		if len(prices) != series.AssetCount() {
			return fmt.Errorf("%w: row %s has %d prices for %d assets",
				ErrMisalignedSeries, series.Dates[row].Format("2006-01-02"),
				len(prices), series.AssetCount())
		}
		if row > 0 && !series.Dates[row].After(series.Dates[row-1]) {
			return fmt.Errorf("%w: dates not strictly ascending at %s",
				ErrMisalignedSeries, series.Dates[row].Format("2006-01-02"))
		}
		for col, price := range prices {
			if price <= 0 {
				return fmt.Errorf("%w: %s at %s (%.6f)",
					ErrNonPositivePrice, series.Symbols[col],
					series.Dates[row].Format("2006-01-02"), price)
			}
		}
	}

	return nil
}
