package portfolio

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// maxCSVBytes caps uploaded portfolio files. Target portfolios are a few
// dozen rows at most.
const maxCSVBytes = 1 << 20

// Handler handles HTTP requests for target-portfolio input.
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new portfolio handler.
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("component", "portfolio_handler").Logger(),
	}
}

// HandleParseCSV handles POST /api/portfolio/csv - parses an uploaded
// target-portfolio CSV and returns the normalized holdings, ready to be
// passed as target_weights to the frontier endpoint.
func (h *Handler) HandleParseCSV(w http.ResponseWriter, r *http.Request) {
	holdings, err := ParseTargetCSV(http.MaxBytesReader(w, r.Body, maxCSVBytes))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	weights, err := WeightsByTicker(holdings)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.Info().Int("holdings", len(holdings)).Msg("Parsed target portfolio CSV")

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"holdings":       holdings,
		"target_weights": weights,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{"error": message})
}
