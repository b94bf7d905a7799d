package frontier

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/frontier/pkg/formulas"
)

// PriceSource supplies aligned price series for a symbol set. Alignment
// and interpolation are the source's responsibility; the core only
// validates the invariants.
type PriceSource interface {
	AlignedSeries(symbols []string) (PriceSeries, error)
}

// Defaults holds the analysis parameters used when a request omits them.
type Defaults struct {
	NumSamples          int
	RiskFreeRate        float64
	AnnualizationFactor int
	Seed                *int64
}

// Handler handles HTTP requests for the frontier module.
type Handler struct {
	prices    PriceSource
	estimator *Estimator
	compare   *Comparator
	runs      *RunRepository
	defaults  Defaults
	log       zerolog.Logger
}

// NewHandler creates a new frontier handler.
func NewHandler(prices PriceSource, runs *RunRepository, defaults Defaults, log zerolog.Logger) *Handler {
	return &Handler{
		prices:    prices,
		estimator: NewEstimator(log),
		compare:   NewComparator(log),
		runs:      runs,
		defaults:  defaults,
		log:       log.With().Str("component", "frontier_handler").Logger(),
	}
}

type estimateRequest struct {
	Symbols             []string           `json:"symbols"`
	NumSamples          *int               `json:"num_samples"`
	RiskFreeRate        *float64           `json:"risk_free_rate"`
	AnnualizationFactor *int               `json:"annualization_factor"`
	Seed                *int64             `json:"seed"`
	TargetWeights       map[string]float64 `json:"target_weights"`
	EdgeThreshold       *float64           `json:"edge_threshold"`
}

// HandleEstimate handles POST /api/frontier/estimate - runs one analysis
// and returns the sampled cloud plus the distinguished portfolios.
func (h *Handler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if len(req.Symbols) == 0 {
		h.writeError(w, http.StatusBadRequest, "symbols is required")
		return
	}

	cfg := EstimateConfig{
		NumSamples:   h.defaults.NumSamples,
		RiskFreeRate: h.defaults.RiskFreeRate,
		Seed:         h.defaults.Seed,
	}
	factor := h.defaults.AnnualizationFactor
	if req.NumSamples != nil {
		cfg.NumSamples = *req.NumSamples
	}
	if req.RiskFreeRate != nil {
		cfg.RiskFreeRate = *req.RiskFreeRate
	}
	if req.Seed != nil {
		cfg.Seed = req.Seed
	}
	if req.AnnualizationFactor != nil {
		factor = *req.AnnualizationFactor
	}

	result, stats, series, err := h.runEstimate(req.Symbols, factor, cfg)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if len(req.TargetWeights) > 0 {
		// Evaluated against the same statistics as the cloud, so the
		// target point is directly comparable.
		target, err := h.compare.Compare(req.TargetWeights, stats, cfg.RiskFreeRate)
		if err != nil {
			h.respondError(w, err)
			return
		}
		result.Target = target
	}

	if err := h.runs.Save(result); err != nil {
		h.log.Warn().Err(err).Str("run_id", result.RunID).Msg("Failed to persist run summary")
	}

	response := map[string]interface{}{
		"result": result,
		"assets": h.assetSummaries(series, factor, cfg.RiskFreeRate),
	}
	if req.EdgeThreshold != nil {
		response["left_edge"] = result.LeftEdge(*req.EdgeThreshold)
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleChart handles GET /api/frontier/chart - renders the estimated
// frontier boundary as a PNG.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	symbolsParam := r.URL.Query().Get("symbols")
	if symbolsParam == "" {
		h.writeError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}
	symbols := splitSymbols(symbolsParam)

	cfg := EstimateConfig{
		NumSamples:   h.defaults.NumSamples,
		RiskFreeRate: h.defaults.RiskFreeRate,
		Seed:         h.defaults.Seed,
	}
	if v := r.URL.Query().Get("num_samples"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "num_samples must be an integer")
			return
		}
		cfg.NumSamples = n
	}

	buckets := 0
	if v := r.URL.Query().Get("buckets"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "buckets must be an integer")
			return
		}
		buckets = n
	}

	result, _, _, err := h.runEstimate(symbols, h.defaults.AnnualizationFactor, cfg)
	if err != nil {
		h.respondError(w, err)
		return
	}

	png, err := RenderCurvePNG(result, buckets, strings.Join(symbols, ", "))
	if err != nil {
		h.log.Error().Err(err).Msg("Chart rendering failed")
		h.writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.log.Error().Err(err).Msg("Failed to write chart response")
	}
}

// HandleRecentRuns handles GET /api/frontier/runs - returns recent run summaries.
func (h *Handler) HandleRecentRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := h.runs.Recent(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load recent runs")
		h.writeError(w, http.StatusInternalServerError, "failed to load recent runs")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// runEstimate loads prices, builds statistics and runs the estimator.
func (h *Handler) runEstimate(symbols []string, factor int, cfg EstimateConfig) (*FrontierResult, *ReturnStatistics, PriceSeries, error) {
	series, err := h.prices.AlignedSeries(symbols)
	if err != nil {
		return nil, nil, PriceSeries{}, fmt.Errorf("%w: %v", errPriceData, err)
	}

	builder, err := NewStatisticsBuilder(factor, h.log)
	if err != nil {
		return nil, nil, PriceSeries{}, err
	}

	stats, err := builder.Build(series)
	if err != nil {
		return nil, nil, PriceSeries{}, err
	}

	result, err := h.estimator.Estimate(stats, cfg)
	if err != nil {
		return nil, nil, PriceSeries{}, err
	}

	return result, stats, series, nil
}

// AssetSummary holds standalone metrics for one asset of the analyzed
// series, for display next to the portfolio-level cloud.
type AssetSummary struct {
	CAGR        *float64 `json:"cagr,omitempty"`
	MaxDrawdown *float64 `json:"max_drawdown,omitempty"`
	SharpeRatio *float64 `json:"sharpe_ratio,omitempty"`
	Volatility  float64  `json:"volatility"`
}

// assetSummaries computes per-asset metrics for the analyzed series.
func (h *Handler) assetSummaries(series PriceSeries, factor int, riskFreeRate float64) map[string]AssetSummary {
	out := make(map[string]AssetSummary, series.AssetCount())
	for col, symbol := range series.Symbols {
		prices := make([]float64, series.ObservationCount())
		for row := range series.Prices {
			prices[row] = series.Prices[row][col]
		}
		returns := formulas.PeriodReturns(prices)

		out[symbol] = AssetSummary{
			CAGR:        formulas.CAGR(prices, factor),
			MaxDrawdown: formulas.MaxDrawdown(prices),
			SharpeRatio: formulas.SharpeRatio(returns, riskFreeRate, factor),
			Volatility:  formulas.AnnualizedVolatility(returns, factor),
		}
	}
	return out
}

// errPriceData marks price-source failures so they map to a 400 rather
// than a 500: the usual cause is a symbol with no synced history.
var errPriceData = errors.New("price data unavailable")

// respondError maps domain errors to HTTP status codes. Validation errors
// are the caller's fault; exhausted retry budgets mean the universe cannot
// be analyzed as requested.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidWeights),
		errors.Is(err, ErrInsufficientData),
		errors.Is(err, ErrNonPositivePrice),
		errors.Is(err, ErrMisalignedSeries),
		errors.Is(err, ErrInvalidConfig),
		errors.Is(err, errPriceData):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInsufficientSamples):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Error().Err(err).Msg("Estimation failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func splitSymbols(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToUpper(strings.TrimSpace(p)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// HTTP helpers

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
