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

	"github.com/stvowns/portfolio-tracker/internal/api"
	"github.com/stvowns/portfolio-tracker/internal/config"
	"github.com/stvowns/portfolio-tracker/internal/database"
	"github.com/stvowns/portfolio-tracker/internal/market"
	"github.com/stvowns/portfolio-tracker/internal/repository"
	"github.com/stvowns/portfolio-tracker/internal/secret"
	"github.com/stvowns/portfolio-tracker/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Secrets box for encrypted settings
	box, err := secret.NewBox(cfg.Security.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize secrets: %v", err)
	}

	// Market-data provider
	yahooClient := market.NewYahooClient(cfg.Pricing.YahooBaseURL)

	// Create services
	systemService := service.NewSystemService(db)
	assetService := service.NewAssetService(assetRepo, transactionRepo)
	transactionService := service.NewTransactionService(transactionRepo, assetRepo)
	holdingService := service.NewHoldingService(assetRepo, transactionRepo, priceRepo)
	priceService := service.NewPriceService(assetRepo, priceRepo, yahooClient)
	settingsService := service.NewSettingsService(settingsRepo, box)

	// Periodic price refresh
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Pricing.SyncSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		result, err := priceService.SyncAll(ctx)
		if err != nil {
			log.Printf("Price sync failed: %v", err)
			return
		}
		log.Printf("Price sync: %d updated, %d failed, %d skipped",
			len(result.Updated), len(result.Errors), result.Skipped)
	})
	if err != nil {
		log.Fatalf("Invalid price sync schedule %q: %v", cfg.Pricing.SyncSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Asset:       assetService,
		Transaction: transactionService,
		Holding:     holdingService,
		Price:       priceService,
		Settings:    settingsService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
