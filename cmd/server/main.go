package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"launchsync-service/internal/infrastructure/config"
	"launchsync-service/internal/infrastructure/persistence"
	"launchsync-service/internal/interface/client"
	mongoRepo "launchsync-service/internal/interface/repository"
	"launchsync-service/internal/usecase"
	"launchsync-service/pkg/cache"
	"launchsync-service/pkg/logger"
	"launchsync-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting LaunchSync Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up metrics
	appMetrics := metrics.NewMetrics("launchsync", prometheus.DefaultRegisterer)

	// Set up repositories
	launchRepo := mongoRepo.NewMongoLaunchRepository(db, cfg.LaunchesCollection)
	webhookConfigRepo := mongoRepo.NewMongoWebhookConfigRepository(db, cfg.WebhooksCollection)
	notifier := mongoRepo.NewWebhookNotifier(webhookConfigRepo, cfg.HTTPTimeout, log)

	// Set up provider client behind the TTL fetch cache
	spacexClient := client.NewSpaceXClient(cfg.SpaceXBaseURL, cfg.HTTPTimeout, log)
	fetchCache := cache.New(cfg.CacheTTL)
	provider := client.NewCachedClient(spacexClient, fetchCache, appMetrics)

	// Set up sync pipeline
	syncer := usecase.NewLaunchSyncer(provider, launchRepo, notifier, log, appMetrics, cfg.FetchConcurrency)
	scheduler := usecase.NewScheduler(syncer, cfg.SyncInterval, log, appMetrics)
	stats := usecase.NewStatsCalculator(launchRepo)

	// Start the scheduler in a goroutine
	go scheduler.Start(ctx)

	// Set up HTTP server for observability
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/runs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"phase":   scheduler.Phase(),
			"history": scheduler.History(),
		})
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		successRates, err := stats.RocketSuccessRates(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		padCounts, err := stats.CountByLaunchpad(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		perYear, err := stats.LaunchesOverTime(r.Context(), usecase.BucketYear)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"rocket_success_rates": successRates,
			"launches_by_pad":      padCounts,
			"launches_by_year":     perYear,
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the scheduler

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("LaunchSync Service stopped")
}
