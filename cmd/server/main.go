package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/frontier/internal/clients/yahoo"
	"github.com/aristath/frontier/internal/config"
	"github.com/aristath/frontier/internal/database"
	"github.com/aristath/frontier/internal/modules/frontier"
	"github.com/aristath/frontier/internal/modules/portfolio"
	"github.com/aristath/frontier/internal/modules/universe"
	"github.com/aristath/frontier/internal/scheduler"
	"github.com/aristath/frontier/internal/server"
	"github.com/aristath/frontier/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{Level: "info", Pretty: true})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Frontier")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Shared collaborators
	history := universe.NewHistoryRepository(db, log)
	yahooClient := yahoo.NewClient(log)

	// Initialize scheduler and register the price sync job
	sched := scheduler.New(log)
	priceSync := scheduler.NewPriceSyncJob(scheduler.PriceSyncConfig{
		Watchlist: cfg.Watchlist,
		Client:    yahooClient,
		History:   history,
		Log:       log,
	})
	if err := sched.AddJob(cfg.PriceSyncSchedule, priceSync); err != nil {
		log.Fatal().Err(err).Msg("Failed to register price sync job")
	}
	sched.Start()
	defer sched.Stop()

	// Sync any symbols with no stored history before serving requests.
	go func() {
		counts, err := history.CountObservations(cfg.Watchlist)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to check initial price coverage")
			return
		}
		for _, symbol := range cfg.Watchlist {
			if counts[symbol] == 0 {
				if err := sched.RunNow(priceSync); err != nil {
					log.Warn().Err(err).Msg("Initial price sync failed to start")
				}
				return
			}
		}
	}()

	// Module handlers
	defaults := frontier.Defaults{
		NumSamples:          cfg.NumSamples,
		RiskFreeRate:        cfg.RiskFreeRate,
		AnnualizationFactor: cfg.AnnualizationFactor,
		Seed:                cfg.RandomSeed,
	}
	frontierHandler := frontier.NewHandler(history, frontier.NewRunRepository(db, log), defaults, log)
	universeHandler := universe.NewHandler(cfg.Watchlist, history, log)
	portfolioHandler := portfolio.NewHandler(log)

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		DB:        db,
		Config:    cfg,
		DevMode:   cfg.DevMode,
		Frontier:  frontierHandler,
		Universe:  universeHandler,
		Portfolio: portfolioHandler,
		Scheduler: sched,
		PriceSync: priceSync,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
