package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api"
	"github.com/ndewijer/Trade-Journal-Backend/internal/config"
	"github.com/ndewijer/Trade-Journal-Backend/internal/database"
	"github.com/ndewijer/Trade-Journal-Backend/internal/extraction"
	"github.com/ndewijer/Trade-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trade-Journal-Backend/internal/service"
	"github.com/ndewijer/Trade-Journal-Backend/internal/version"
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

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	eventRepo := repository.NewEventRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	ledgerService := service.NewLedgerService(eventRepo)
	settingsService, err := service.NewSettingsService(
		settingRepo,
		cfg.Ledger.StartingCapital,
		cfg.Extraction.APIKey,
		cfg.Security.EncryptionKey,
	)
	if err != nil {
		log.Fatalf("Failed to create settings service: %v", err)
	}
	if cfg.Security.EncryptionKey == "" {
		log.Println("ENCRYPTION_KEY not set: extraction keys can only come from GEMINI_API_KEY")
	}

	dashboardService := service.NewDashboardService(ledgerService, settingsService)
	if err := dashboardService.Start(context.Background()); err != nil {
		log.Fatalf("Failed to load ledger: %v", err)
	}
	defer dashboardService.Stop()

	extractor := extraction.NewGeminiClient(
		cfg.Extraction.Model,
		cfg.Extraction.RatePerMinute,
		settingsService.ExtractionKey,
	)
	uploadService := service.NewUploadService(extractor, ledgerService, cfg.Extraction.Concurrency)

	snapshotService := service.NewSnapshotService(snapshotRepo, dashboardService)
	if err := snapshotService.StartSchedule(cfg.Snapshot.Schedule); err != nil {
		log.Fatalf("Failed to schedule snapshots: %v", err)
	}
	defer snapshotService.StopSchedule()

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Ledger:    ledgerService,
		Dashboard: dashboardService,
		Upload:    uploadService,
		Settings:  settingsService,
		Snapshot:  snapshotService,
	}, cfg)

	// Uploads wait on extraction, so writes get more room than reads.
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting trade journal %s on %s", version.Version, cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
