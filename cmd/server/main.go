package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"cardvault/internal/api"
	"cardvault/internal/config"
	"cardvault/internal/database"
	"cardvault/internal/services"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Initialize(cfg.Database.URL, cfg.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()

	// Initialize services
	fetcher := services.NewFeedFetcher(cfg.Feed.URL, cfg.Feed.AuthHeader, cfg.Feed.Cookie)
	store := services.NewPriceStore(db)
	valuation := services.NewValuationService(db, store)
	syncService := services.NewSyncService(cfg, fetcher, store, valuation)
	snapshotService := services.NewSnapshotService(db, valuation, cfg.SnapshotHour)

	// Cancellable context for graceful shutdown of background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start snapshot service in background
	go snapshotService.Start(ctx)

	// Optionally schedule feed syncs in-process. Without SYNC_CRON the
	// ingestion endpoint is expected to be hit by an external cron.
	var scheduler *cron.Cron
	if cfg.Feed.SyncCron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Feed.SyncCron, func() {
			if result, err := syncService.Run(ctx); err != nil {
				log.Printf("Scheduled feed sync failed: %v", err)
			} else {
				log.Printf("Scheduled feed sync wrote %d rows for %s", result.Inserted, result.Date)
			}
		})
		if err != nil {
			log.Fatalf("Invalid SYNC_CRON %q: %v", cfg.Feed.SyncCron, err)
		}
		scheduler.Start()
		log.Printf("Feed sync scheduled: %s", cfg.Feed.SyncCron)
	}

	// Setup router
	router := api.SetupRouter(cfg, syncService, fetcher, valuation, snapshotService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Stop background workers
	cancel()
	if scheduler != nil {
		scheduler.Stop()
	}

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
