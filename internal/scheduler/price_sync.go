package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/frontier/internal/clients/yahoo"
	"github.com/aristath/frontier/internal/modules/universe"
)

// Five years of daily closes, and the minimum share of them a symbol must
// actually have to stay in the analysis universe.
const (
	syncInterval     = "1d"
	syncPeriod       = "5y"
	expectedDaily    = 5 * 252
	minCoverageRatio = 0.9
)

// PriceSyncJob refreshes the stored price history for the configured
// watchlist. Symbols with insufficient coverage are skipped, not partially
// stored, so alignment never quietly truncates the other series.
type PriceSyncJob struct {
	watchlist []string
	client    *yahoo.Client
	history   *universe.HistoryRepository
	log       zerolog.Logger
}

// PriceSyncConfig holds configuration for the price sync job
type PriceSyncConfig struct {
	Watchlist []string
	Client    *yahoo.Client
	History   *universe.HistoryRepository
	Log       zerolog.Logger
}

// NewPriceSyncJob creates a new price sync job
func NewPriceSyncJob(cfg PriceSyncConfig) *PriceSyncJob {
	return &PriceSyncJob{
		watchlist: cfg.Watchlist,
		client:    cfg.Client,
		history:   cfg.History,
		log:       cfg.Log.With().Str("job", "price_sync").Logger(),
	}
}

// Name returns the job name
func (j *PriceSyncJob) Name() string {
	return "price_sync"
}

// Run fetches and stores fresh prices for every watchlist symbol
func (j *PriceSyncJob) Run() error {
	if len(j.watchlist) == 0 {
		j.log.Debug().Msg("Empty watchlist, nothing to sync")
		return nil
	}

	var failed int
	for _, symbol := range j.watchlist {
		if err := j.syncSymbol(symbol); err != nil {
			j.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to sync symbol")
			failed++
		}
	}

	j.log.Info().
		Int("symbols", len(j.watchlist)).
		Int("failed", failed).
		Msg("Price sync finished")

	if failed == len(j.watchlist) {
		return fmt.Errorf("price sync failed for all %d symbols", failed)
	}
	return nil
}

func (j *PriceSyncJob) syncSymbol(symbol string) error {
	prices, err := j.client.GetHistoricalPrices(symbol, syncInterval, syncPeriod)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if !yahoo.HasSufficientCoverage(prices, expectedDaily, minCoverageRatio) {
		return fmt.Errorf("insufficient coverage: %d of %d expected observations",
			len(prices), expectedDaily)
	}

	return j.history.SavePrices(symbol, prices)
}
