package universe

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/frontier/internal/clients/yahoo"
	"github.com/aristath/frontier/internal/database"
	"github.com/aristath/frontier/internal/modules/frontier"
)

// HistoryRepository stores and retrieves historical adjusted-close prices.
// It is the alignment boundary: the frontier core only ever sees series
// this repository has already intersected on common dates.
type HistoryRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *database.DB, log zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:  db,
		log: log.With().Str("component", "history_repository").Logger(),
	}
}

// SavePrices upserts the adjusted closes for one symbol.
func (r *HistoryRepository) SavePrices(symbol string, prices []yahoo.HistoricalPrice) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO price_history (symbol, date, adj_close)
		VALUES (?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET adj_close = excluded.adj_close
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prices {
		if p.AdjClose <= 0 {
			continue // provider gaps show up as zero closes
		}
		if _, err := stmt.Exec(symbol, p.Date.Format("2006-01-02"), p.AdjClose); err != nil {
			return fmt.Errorf("failed to upsert price for %s: %w", symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prices: %w", err)
	}

	r.log.Debug().Str("symbol", symbol).Int("count", len(prices)).Msg("Saved price history")
	return nil
}

// CountObservations returns the number of stored observations per symbol.
func (r *HistoryRepository) CountObservations(symbols []string) (map[string]int, error) {
	counts := make(map[string]int, len(symbols))
	for _, symbol := range symbols {
		var n int
		err := r.db.QueryRow(
			`SELECT COUNT(*) FROM price_history WHERE symbol = ?`, symbol,
		).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("failed to count observations for %s: %w", symbol, err)
		}
		counts[symbol] = n
	}
	return counts, nil
}

// AlignedSeries loads the stored prices for the given symbols and aligns
// them on their common observation dates, ascending. Dates missing for any
// symbol are dropped, so the result satisfies the core's aligned-series
// invariant.
func (r *HistoryRepository) AlignedSeries(symbols []string) (frontier.PriceSeries, error) {
	if len(symbols) == 0 {
		return frontier.PriceSeries{}, fmt.Errorf("no symbols requested")
	}

	perSymbol := make([]map[string]float64, len(symbols))
	for i, symbol := range symbols {
		prices, err := r.pricesBySymbol(symbol)
		if err != nil {
			return frontier.PriceSeries{}, err
		}
		if len(prices) == 0 {
			return frontier.PriceSeries{}, fmt.Errorf("no price history for %s", symbol)
		}
		perSymbol[i] = prices
	}

	// Intersect observation dates across all symbols
	common := make([]string, 0, len(perSymbol[0]))
	for date := range perSymbol[0] {
		shared := true
		for _, prices := range perSymbol[1:] {
			if _, ok := prices[date]; !ok {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, date)
		}
	}
	sort.Strings(common)

	dates := make([]time.Time, len(common))
	rows := make([][]float64, len(common))
	for rowIdx, date := range common {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return frontier.PriceSeries{}, fmt.Errorf("invalid stored date %q: %w", date, err)
		}
		dates[rowIdx] = parsed

		row := make([]float64, len(symbols))
		for col := range symbols {
			row[col] = perSymbol[col][date]
		}
		rows[rowIdx] = row
	}

	r.log.Debug().
		Str("symbols", strings.Join(symbols, ",")).
		Int("aligned_dates", len(common)).
		Msg("Built aligned price series")

	return frontier.PriceSeries{
		Symbols: append([]string(nil), symbols...),
		Dates:   dates,
		Prices:  rows,
	}, nil
}

// pricesBySymbol loads date → adjusted close for one symbol.
func (r *HistoryRepository) pricesBySymbol(symbol string) (map[string]float64, error) {
	rows, err := r.db.Query(
		`SELECT date, adj_close FROM price_history WHERE symbol = ? ORDER BY date ASC`,
		symbol,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices for %s: %w", symbol, err)
	}
	defer rows.Close()

	prices := make(map[string]float64)
	for rows.Next() {
		var date string
		var adjClose float64
		if err := rows.Scan(&date, &adjClose); err != nil {
			return nil, fmt.Errorf("failed to scan price for %s: %w", symbol, err)
		}
		prices[date] = adjClose
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prices for %s: %w", symbol, err)
	}

	return prices, nil
}
