package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexivanou/tripsynth-api/internal/api"
	"github.com/alexivanou/tripsynth-api/internal/config"
	"github.com/alexivanou/tripsynth-api/internal/database"
	"github.com/alexivanou/tripsynth-api/internal/enrichment"
	"github.com/alexivanou/tripsynth-api/internal/generation"
	"github.com/alexivanou/tripsynth-api/internal/metrics"
	"github.com/alexivanou/tripsynth-api/internal/repository"
	"github.com/alexivanou/tripsynth-api/internal/service"
	"github.com/alexivanou/tripsynth-api/internal/stats"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Connected to database", zap.String("type", string(cfg.DB.Type)))

	if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if count, err := repository.CountTrips(context.Background(), db); err != nil {
		logger.Warn("Failed to count stored trips", zap.Error(err))
	} else {
		logger.Info("Trip store ready", zap.Int("trips", count))
	}

	if !cfg.Generation.Configured() {
		logger.Warn("GEMINI_API_KEY is not set, every itinerary will come from the fallback synthesizer")
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)
	m := metrics.NewMetrics(cfg.Metrics.Namespace)
	svc := service.NewService(
		repos.Trip,
		repos.Owner,
		generation.NewClient(cfg.Generation, nil),
		enrichment.NewEnricher(cfg.Locale, nil, logger),
		m,
		logger,
		cfg.Generation.Timeout,
	)
	statsCollector := stats.NewCollector(db, cfg.DB)
	router := api.NewRouter(svc, statsCollector, m, logger)

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// A request may wait for the full generation timeout before falling back.
		WriteTimeout: cfg.Generation.Timeout + cfg.Locale.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("model", cfg.Generation.Model),
			zap.Duration("generation_timeout", cfg.Generation.Timeout),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
