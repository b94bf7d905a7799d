package frontier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/frontier/internal/database"
)

// stubPrices serves a fixed aligned series for any symbol set.
type stubPrices struct {
	series PriceSeries
	err    error
}

func (s *stubPrices) AlignedSeries(symbols []string) (PriceSeries, error) {
	if s.err != nil {
		return PriceSeries{}, s.err
	}
	return s.series, nil
}

func stubSeries() PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 30)
	prices := make([][]float64, 30)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
		// Two drifting series with different slopes
		prices[i] = []float64{
			100 * (1 + 0.002*float64(i)) * (1 + 0.01*float64(i%3)),
			50 * (1 + 0.001*float64(i)) * (1 + 0.005*float64((i+1)%4)),
		}
	}
	return PriceSeries{
		Symbols: []string{"AAA", "BBB"},
		Dates:   dates,
		Prices:  prices,
	}
}

func testHandler(t *testing.T, prices PriceSource) *Handler {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	defaults := Defaults{
		NumSamples:          200,
		RiskFreeRate:        0.03,
		AnnualizationFactor: 252,
	}
	return NewHandler(prices, NewRunRepository(db, zerolog.Nop()), defaults, zerolog.Nop())
}

func postEstimate(t *testing.T, h *Handler, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/frontier/estimate", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleEstimate(rec, req)
	return rec
}

func TestHandleEstimate(t *testing.T) {
	h := testHandler(t, &stubPrices{series: stubSeries()})

	rec := postEstimate(t, h, map[string]interface{}{
		"symbols":     []string{"AAA", "BBB"},
		"num_samples": 100,
		"seed":        42,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result FrontierResult          `json:"result"`
		Assets map[string]AssetSummary `json:"assets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Result.RunID)
	assert.Len(t, resp.Result.Samples, 100)
	assert.Nil(t, resp.Result.Target)

	require.Contains(t, resp.Assets, "AAA")
	require.Contains(t, resp.Assets, "BBB")
	assert.NotNil(t, resp.Assets["AAA"].CAGR)
	assert.NotNil(t, resp.Assets["AAA"].MaxDrawdown)
	assert.Greater(t, resp.Assets["AAA"].Volatility, 0.0)
}

func TestHandleEstimateWithTarget(t *testing.T) {
	h := testHandler(t, &stubPrices{series: stubSeries()})

	rec := postEstimate(t, h, map[string]interface{}{
		"symbols":        []string{"AAA", "BBB"},
		"num_samples":    50,
		"seed":           42,
		"target_weights": map[string]float64{"AAA": 0.5, "BBB": 0.5},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result FrontierResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result.Target)
	assert.Equal(t, []float64{0.5, 0.5}, resp.Result.Target.Weights)
}

func TestHandleEstimateBadRequests(t *testing.T) {
	h := testHandler(t, &stubPrices{series: stubSeries()})

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "missing symbols", body: map[string]interface{}{}},
		{name: "zero samples", body: map[string]interface{}{
			"symbols": []string{"AAA", "BBB"}, "num_samples": 0,
		}},
		{name: "bad annualization factor", body: map[string]interface{}{
			"symbols": []string{"AAA", "BBB"}, "annualization_factor": 0,
		}},
		{name: "unknown target ticker", body: map[string]interface{}{
			"symbols":        []string{"AAA", "BBB"},
			"num_samples":    10,
			"target_weights": map[string]float64{"ZZZ": 1.0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEstimate(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleEstimatePriceSourceFailure(t *testing.T) {
	h := testHandler(t, &stubPrices{err: fmt.Errorf("no price history for ZZZ")})

	rec := postEstimate(t, h, map[string]interface{}{
		"symbols": []string{"ZZZ"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ZZZ")
}

func TestHandleChart(t *testing.T) {
	h := testHandler(t, &stubPrices{series: stubSeries()})

	req := httptest.NewRequest(http.MethodGet,
		"/api/frontier/chart?symbols=AAA,BBB&num_samples=100", nil)
	rec := httptest.NewRecorder()
	h.HandleChart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestHandleChartRequiresSymbols(t *testing.T) {
	h := testHandler(t, &stubPrices{series: stubSeries()})

	req := httptest.NewRequest(http.MethodGet, "/api/frontier/chart", nil)
	rec := httptest.NewRecorder()
	h.HandleChart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecentRuns(t *testing.T) {
	h := testHandler(t, &stubPrices{series: stubSeries()})

	// Two estimates leave two persisted summaries
	for i := 0; i < 2; i++ {
		rec := postEstimate(t, h, map[string]interface{}{
			"symbols":     []string{"AAA", "BBB"},
			"num_samples": 20,
			"seed":        int64(i),
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/frontier/runs", nil)
	rec := httptest.NewRecorder()
	h.HandleRecentRuns(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Runs []RunSummary `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Runs, 2)
}
