package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Edge-Works/EdgeNodeObserver/internal/api"
	"github.com/Edge-Works/EdgeNodeObserver/internal/backend"
	"github.com/Edge-Works/EdgeNodeObserver/internal/config"
	"github.com/Edge-Works/EdgeNodeObserver/internal/configstore"
	"github.com/Edge-Works/EdgeNodeObserver/internal/earnings"
	"github.com/Edge-Works/EdgeNodeObserver/internal/events"
	"github.com/Edge-Works/EdgeNodeObserver/internal/index"
	"github.com/Edge-Works/EdgeNodeObserver/internal/models"
	"github.com/Edge-Works/EdgeNodeObserver/internal/node"
	"github.com/Edge-Works/EdgeNodeObserver/internal/notify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	hub := events.NewHub()
	eventLog := events.NewLog(events.GetLogger(cfg.DataDir), hub)

	// Initialize database connection
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(filepath.Join(cfg.DataDir, "observer.db"))
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		eventLog.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		eventLog.Fatalf("Failed to get database handle: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	// Migrate the schema
	if err := db.AutoMigrate(&models.ConfigEntry{}, &models.Payout{}); err != nil {
		eventLog.Fatalf("Failed to migrate database schema: %v", err)
	}

	store := configstore.New(db, cfg.DefaultIndexURL)
	indexClient := index.NewClient()
	notifier := notify.New(hub, eventLog)

	resolver := &node.WalletResolver{Store: store, Index: indexClient, Log: eventLog}

	poller := node.NewPoller(cfg.PollInterval, cfg.RecheckLimit)
	poller.Store = store
	poller.Index = indexClient
	poller.Resolver = resolver
	poller.Notifier = notifier
	poller.Log = eventLog

	orchestrator := &node.Orchestrator{
		Store:   store,
		Index:   indexClient,
		Backend: backend.NewEdgeCLI(cfg.DataDir, store, eventLog),
		Poller:  poller,
		Log:     eventLog,
	}
	poller.OnInitialized = orchestrator.SyncInitializationStatus
	orchestrator.SyncInitializationStatus()

	scanner := &earnings.Scanner{
		Store:    store,
		Index:    indexClient,
		Notifier: notifier,
		Log:      eventLog,
		DB:       db,
	}

	// Channel to listen for termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	// Periodic earnings scan in a separate goroutine
	go func() {
		ticker := time.NewTicker(cfg.ScanInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if _, ok := store.WalletAddress(); ok {
					scanner.ScanForNewPayouts()
				}
			}
		}
	}()

	// Start the API server in a separate goroutine
	go func() {
		server := &api.Server{
			DB:           db,
			Store:        store,
			Orchestrator: orchestrator,
			Poller:       poller,
			Scanner:      scanner,
			Hub:          hub,
		}
		eventLog.Printf("Starting API server on %s", cfg.ListenAddr)
		if err := server.Router().Run(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			eventLog.Fatalf("Failed to run API server: %v", err)
		}
	}()

	// Block until a signal is received
	<-stop

	eventLog.Printf("Shutting down...")
	close(done)
	poller.Stop()
	sqlDB.Close()
}
