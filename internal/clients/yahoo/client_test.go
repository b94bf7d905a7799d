package yahoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetYahooSymbol(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   string
	}{
		{name: "US suffix stripped", symbol: "AAPL.US", want: "AAPL"},
		{name: "bare US ticker unchanged", symbol: "AAPL", want: "AAPL"},
		{name: "German ticker unchanged", symbol: "BASF.DE", want: "BASF.DE"},
		{name: "Japanese suffix mapped", symbol: "7203.JP", want: "7203.T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetYahooSymbol(tt.symbol))
		})
	}
}

func TestHasSufficientCoverage(t *testing.T) {
	prices := make([]HistoricalPrice, 90)

	assert.True(t, HasSufficientCoverage(prices, 100, 0.9))
	assert.False(t, HasSufficientCoverage(prices, 100, 0.95))
	assert.False(t, HasSufficientCoverage(prices, 0, 0.9))
}
