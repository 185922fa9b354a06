// Command cardvault-server starts the CardVault contact manager HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"cardvault/internal/config"
	"cardvault/internal/handler"
	"cardvault/internal/hub"
	"cardvault/internal/repository/sqlite"
	"cardvault/internal/service"
)

func main() {
	addr := pflag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := pflag.String("db", "", "SQLite database path (overrides config)")
	uploadsDir := pflag.String("uploads-dir", "", "directory for uploaded photos (overrides config)")
	seed := pflag.Bool("seed", false, "insert sample contacts if the database is empty")
	pflag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, cfgPath, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *uploadsDir != "" {
		cfg.UploadsDir = *uploadsDir
	}
	if *seed {
		cfg.Seed = true
	}
	logger.Info("starting",
		zap.String("addr", cfg.Addr),
		zap.String("db", cfg.DBPath),
		zap.String("config", cfgPath),
	)

	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		logger.Fatal("failed to create uploads dir", zap.Error(err))
	}

	repo, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer repo.Close()

	ctx := context.Background()
	if cfg.Seed {
		empty, err := repo.IsEmpty(ctx)
		if err != nil {
			logger.Fatal("failed to check database", zap.Error(err))
		}
		if empty {
			logger.Info("seeding database with sample contacts")
			if err := repo.Seed(ctx); err != nil {
				logger.Fatal("failed to seed database", zap.Error(err))
			}
		}
	}

	// Event bus feeding the SSE hub
	eventBus := service.NewEventBus()
	sseHub := hub.New(logger)
	go sseHub.Run()

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(event)
		}
	}()

	photoSvc := service.NewPhotoService(repo, cfg.UploadsDir, eventBus, logger)
	cardSvc := service.NewCardService(repo, photoSvc, eventBus, logger)
	cardHandler := handler.NewCardHandler(cardSvc, photoSvc, repo, logger)

	router := chi.NewRouter()
	cardHandler.RegisterRoutes(router)
	router.Get("/events", sseHub.ServeHTTP)

	finalHandler := handler.Chain(router,
		handler.Recover(logger),
		handler.CORS,
		handler.RequestLogger(logger),
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
