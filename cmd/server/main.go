package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/lol-extension-backend/internal/api"
	"github.com/dom/lol-extension-backend/internal/assets"
	"github.com/dom/lol-extension-backend/internal/config"
	"github.com/dom/lol-extension-backend/internal/ddragon"
	"github.com/dom/lol-extension-backend/internal/logger"
	"github.com/dom/lol-extension-backend/internal/repository/postgres"
	"github.com/dom/lol-extension-backend/internal/scheduler"
	"github.com/dom/lol-extension-backend/internal/service"
	syncer "github.com/dom/lol-extension-backend/internal/sync"
	"github.com/dom/lol-extension-backend/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	// Database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("failed to connect to database", "error", err)
	}
	store := postgres.NewStore(db)
	repos := store.Repos()

	// Upstream client
	client := ddragon.NewClient(
		ddragon.WithBaseURL(cfg.DataDragonBaseURL),
		ddragon.WithLanguage(cfg.DataDragonLang),
		ddragon.WithTimeout(cfg.HTTPTimeout),
	)

	// WebSocket hub for the sync status stream
	hub := websocket.NewHub(logg)
	go hub.Run()

	// Sync pipeline
	registry := syncer.NewRegistry(hub)
	graphOpts := syncer.GraphOptions{MythicInference: cfg.MythicInference}
	orch := syncer.NewOrchestrator(store, client, registry, logg, graphOpts)
	reporter := syncer.NewReporter(store, logg)

	// Scheduler
	sched := scheduler.New(cfg.SchedulerPollInterval, logg)
	scheduler.RegisterSyncTasks(sched, orch, cfg.VersionCheckInterval, cfg.SyncInterval, logg)
	if cfg.SchedulerEnabled {
		sched.Start(context.Background())
	}

	// Assets
	assetSvc, err := assets.NewService(cfg.AssetCacheDir, logg)
	if err != nil {
		logg.Fatal("failed to initialize asset cache", "error", err)
	}

	// Read services and router
	services := service.NewServices(repos)
	router := api.NewRouter(services, orch, reporter, sched, hub, assetSvc, logg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logg.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")

	if cfg.SchedulerEnabled {
		sched.Stop()
	}
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.Fatal("server forced to shutdown", "error", err)
	}

	logg.Info("server stopped")
}
