package portfolio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetCSV(t *testing.T) {
	input := "Ticker,Name,Weight\nAAPL,Apple Inc.,60\nmsft,Microsoft,40\n"

	holdings, err := ParseTargetCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	assert.Equal(t, "AAPL", holdings[0].Ticker)
	assert.Equal(t, "Apple Inc.", holdings[0].Name)
	assert.InDelta(t, 0.6, holdings[0].Weight, 1e-9)

	// Tickers are upper-cased, weights normalized to sum 1
	assert.Equal(t, "MSFT", holdings[1].Ticker)
	assert.InDelta(t, 0.4, holdings[1].Weight, 1e-9)
}

func TestParseTargetCSVNormalizesFractions(t *testing.T) {
	input := "ticker,weight\nAAPL,0.3\nMSFT,0.3\n"

	holdings, err := ParseTargetCSV(strings.NewReader(input))
	require.NoError(t, err)

	// 0.3/0.3 normalizes to an even split regardless of the stated scale
	assert.InDelta(t, 0.5, holdings[0].Weight, 1e-9)
	assert.InDelta(t, 0.5, holdings[1].Weight, 1e-9)
}

func TestParseTargetCSVHeaderVariants(t *testing.T) {
	input := "My Ticker Symbol,Target Weight %\nVWCE,100\n"

	holdings, err := ParseTargetCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "VWCE", holdings[0].Ticker)
	assert.InDelta(t, 1.0, holdings[0].Weight, 1e-9)
}

func TestParseTargetCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "header only", input: "Ticker,Weight\n"},
		{name: "missing weight column", input: "Ticker,Name\nAAPL,Apple\n"},
		{name: "empty ticker", input: "Ticker,Weight\n,50\n"},
		{name: "non-numeric weight", input: "Ticker,Weight\nAAPL,lots\n"},
		{name: "zero weight", input: "Ticker,Weight\nAAPL,0\n"},
		{name: "negative weight", input: "Ticker,Weight\nAAPL,-10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTargetCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestWeightsByTicker(t *testing.T) {
	weights, err := WeightsByTicker([]Holding{
		{Ticker: "AAPL", Weight: 0.6},
		{Ticker: "MSFT", Weight: 0.4},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"AAPL": 0.6, "MSFT": 0.4}, weights)
}

func TestWeightsByTickerRejectsDuplicates(t *testing.T) {
	_, err := WeightsByTicker([]Holding{
		{Ticker: "AAPL", Weight: 0.5},
		{Ticker: "AAPL", Weight: 0.5},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AAPL")
}
