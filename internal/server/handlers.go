package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"runtime"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "frontier",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleSystemStatus handles system status requests
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var observations, symbols int
	var latestDate sql.NullString
	err := s.db.Conn().QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT symbol), MAX(date)
		FROM price_history
	`).Scan(&observations, &symbols, &latestDate)
	if err != nil && err != sql.ErrNoRows {
		s.log.Error().Err(err).Msg("Failed to query price history stats")
	}

	var runCount int
	err = s.db.Conn().QueryRow(`SELECT COUNT(*) FROM analysis_runs`).Scan(&runCount)
	if err != nil && err != sql.ErrNoRows {
		s.log.Error().Err(err).Msg("Failed to query analysis run count")
	}

	var dbSizeMB float64
	if info, statErr := os.Stat(s.cfg.DatabasePath); statErr == nil {
		dbSizeMB = float64(info.Size()) / 1024 / 1024
	}

	response := map[string]interface{}{
		"status": "running",
		"price_history": map[string]interface{}{
			"observations": observations,
			"symbols":      symbols,
			"latest_date":  latestDate.String,
		},
		"analysis_runs": runCount,
		"watchlist":     len(s.cfg.Watchlist),
		"database": map[string]interface{}{
			"path":    s.cfg.DatabasePath,
			"size_mb": dbSizeMB,
		},
		"memory": map[string]interface{}{
			"alloc_mb":       m.Alloc / 1024 / 1024,
			"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
			"sys_mb":         m.Sys / 1024 / 1024,
			"num_gc":         m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleTriggerPriceSync triggers the price sync job immediately
// POST /api/system/sync/prices
func (s *Server) handleTriggerPriceSync(w http.ResponseWriter, r *http.Request) {
	if s.priceSync == nil {
		s.writeError(w, http.StatusServiceUnavailable, "price sync job not registered")
		return
	}

	s.log.Info().Msg("Manual price sync triggered")

	if err := s.scheduler.RunNow(s.priceSync); err != nil {
		s.log.Error().Err(err).Msg("Failed to trigger price sync")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Price sync triggered successfully",
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
