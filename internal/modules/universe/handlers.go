package universe

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Handler handles HTTP requests for the universe module.
type Handler struct {
	watchlist []string
	history   *HistoryRepository
	log       zerolog.Logger
}

// NewHandler creates a new universe handler.
func NewHandler(watchlist []string, history *HistoryRepository, log zerolog.Logger) *Handler {
	return &Handler{
		watchlist: watchlist,
		history:   history,
		log:       log.With().Str("component", "universe_handler").Logger(),
	}
}

// Asset is one watchlist entry with its stored price coverage.
type Asset struct {
	Ticker       string `json:"ticker"`
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	Observations int    `json:"observations"`
}

// HandleList handles GET /api/universe - returns the watchlist with
// display names and stored observation counts.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	counts, err := h.history.CountObservations(h.watchlist)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count observations")
		h.writeError(w, http.StatusInternalServerError, "failed to read price coverage")
		return
	}

	assets := make([]Asset, 0, len(h.watchlist))
	for _, ticker := range h.watchlist {
		assets = append(assets, Asset{
			Ticker:       ticker,
			Name:         FullName(ticker),
			DisplayName:  DisplayName(ticker),
			Observations: counts[ticker],
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
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
