package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	api "library-backend/internal/api/http"
	"library-backend/internal/config"
	"library-backend/internal/jobs"
	"library-backend/internal/logger"
	"library-backend/internal/repository/flatfile"
	"library-backend/internal/scheduler"
	"library-backend/internal/service"
	"library-backend/internal/session"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Library Circulation Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Data configuration", "dir", cfg.Data.Dir)

	// Initialize flat-file store
	store, err := flatfile.NewStore(cfg.Data.Dir)
	if err != nil {
		logger.Error("Failed to initialize data store", "error", err)
		log.Fatalf("Failed to initialize data store: %v", err)
	}
	if err := store.EnsureSeedData(context.Background()); err != nil {
		logger.Error("Failed to seed default data", "error", err)
		log.Fatalf("Failed to seed default data: %v", err)
	}
	logger.Info("Data store ready")

	// Initialize Services
	catalogSvc := service.NewCatalogService(store.BookRepository)
	directorySvc := service.NewDirectoryService(store.PatronRepository)
	accountMgr := service.NewAccountManager(store.LedgerRepository)
	circulationSvc := service.NewCirculationService(catalogSvc, accountMgr)
	sessions := session.NewManager()

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(directorySvc, accountMgr, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP API
	apiServer := api.NewServer(catalogSvc, directorySvc, accountMgr, circulationSvc, sessions)
	httpServer := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: apiServer.Router(),
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", "signal", sig.String())

	if err := httpServer.Shutdown(context.Background()); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
