package frontier

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/frontier/internal/database"
)

// RunRepository persists a one-line summary per analysis run. The cloud
// itself is scoped to the request and never stored.
type RunRepository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *database.DB, log zerolog.Logger) *RunRepository {
	return &RunRepository{
		db:  db,
		log: log.With().Str("component", "run_repository").Logger(),
	}
}

// RunSummary is one recorded analysis run.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Symbols    []string  `json:"symbols"`
	NumSamples int       `json:"num_samples"`
	MaxSharpe  float64   `json:"max_sharpe"`
	MinRisk    float64   `json:"min_risk"`
	CreatedAt  time.Time `json:"created_at"`
}

// Save records the summary of a completed run.
func (r *RunRepository) Save(result *FrontierResult) error {
	_, err := r.db.Exec(`
		INSERT INTO analysis_runs (run_id, symbols, num_samples, max_sharpe, min_risk)
		VALUES (?, ?, ?, ?, ?)
	`,
		result.RunID,
		strings.Join(result.Symbols, ","),
		len(result.Samples),
		result.MaxSharpe.Metrics.SharpeRatio,
		result.MinRisk.Metrics.Risk,
	)
	if err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}
	return nil
}

// Recent returns the most recent run summaries, newest first.
func (r *RunRepository) Recent(limit int) ([]RunSummary, error) {
	rows, err := r.db.Query(`
		SELECT run_id, symbols, num_samples, max_sharpe, min_risk, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunSummary, 0, limit)
	for rows.Next() {
		var run RunSummary
		var symbols, createdAt string
		if err := rows.Scan(&run.RunID, &symbols, &run.NumSamples,
			&run.MaxSharpe, &run.MinRisk, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Symbols = strings.Split(symbols, ",")
		if ts, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			run.CreatedAt = ts
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
