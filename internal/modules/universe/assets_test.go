package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	assert.Equal(t, "Apple Inc. (Technology)", FullName("AAPL"))
	assert.Equal(t, "Apple Inc. (Technology)", FullName("aapl"))
	assert.Equal(t, "UNKNOWN", FullName("UNKNOWN"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "SPY - SPDR S&P 500 ETF Trust (US Large Cap)", DisplayName("SPY"))
	assert.Equal(t, "UNKNOWN", DisplayName("UNKNOWN"))
}
