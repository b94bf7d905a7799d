package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Holding is one row of a user-supplied target portfolio.
type Holding struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name,omitempty"`
	Weight float64 `json:"weight"`
}

// ParseTargetCSV reads a target portfolio from CSV. The header row is
// sniffed for the ticker and weight columns (any header containing
// "ticker" or "weight", case-insensitive); a Name column is optional.
// Weights must be positive and are normalized to sum to 1, matching how
// user CSVs are usually stated in percent or arbitrary units.
func ParseTargetCSV(r io.Reader) ([]Holding, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV must have a header row and at least one holding")
	}

	header := records[0]
	tickerCol, weightCol, nameCol := -1, -1, -1
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch {
		case strings.Contains(name, "ticker"):
			tickerCol = i
		case strings.Contains(name, "weight"):
			weightCol = i
		case name == "name":
			nameCol = i
		}
	}
	if tickerCol < 0 || weightCol < 0 {
		return nil, fmt.Errorf("CSV must contain columns for Ticker and Weight")
	}

	holdings := make([]Holding, 0, len(records)-1)
	var total float64
	for line, record := range records[1:] {
		if len(record) <= tickerCol || len(record) <= weightCol {
			return nil, fmt.Errorf("row %d has too few columns", line+2)
		}

		ticker := strings.ToUpper(strings.TrimSpace(record[tickerCol]))
		if ticker == "" {
			return nil, fmt.Errorf("row %d has an empty ticker", line+2)
		}

		weight, err := strconv.ParseFloat(strings.TrimSpace(record[weightCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q for %s", record[weightCol], ticker)
		}
		if weight <= 0 {
			return nil, fmt.Errorf("weight for %s must be positive, got %g", ticker, weight)
		}

		h := Holding{Ticker: ticker, Weight: weight}
		if nameCol >= 0 && len(record) > nameCol {
			h.Name = strings.TrimSpace(record[nameCol])
		}

		holdings = append(holdings, h)
		total += weight
	}

	// Normalize so downstream weight validation sees a unit sum
	for i := range holdings {
		holdings[i].Weight /= total
	}

	return holdings, nil
}

// WeightsByTicker converts parsed holdings to the ticker→weight mapping
// the frontier comparator consumes. Duplicate tickers are rejected.
func WeightsByTicker(holdings []Holding) (map[string]float64, error) {
	weights := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		if _, exists := weights[h.Ticker]; exists {
			return nil, fmt.Errorf("duplicate ticker %s in portfolio", h.Ticker)
		}
		weights[h.Ticker] = h.Weight
	}
	return weights, nil
}
