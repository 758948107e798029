package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradejournal/config"
	"tradejournal/internal/adapters/insight"
	"tradejournal/internal/adapters/logger"
	"tradejournal/internal/adapters/sqlite"
	"tradejournal/internal/app"
	"tradejournal/internal/ports"
	"tradejournal/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 4. Initialize Insight Client (optional)
	var insightGen ports.InsightGenerator
	if cfg.InsightAPIKey != "" {
		client, err := insight.New(insight.Config{
			APIKey:  cfg.InsightAPIKey,
			Model:   cfg.InsightModel,
			BaseURL: cfg.InsightBaseURL,
			Timeout: cfg.InsightTimeout,
			Logger:  appLogger,
		})
		if err != nil {
			appLogger.Error(context.Background(), err, "FATAL: Failed to initialize insight client")
			log.Fatalf("FATAL: Failed to initialize insight client: %v", err)
		}
		insightGen = client
	} else {
		appLogger.Warn(context.Background(), "Insight service not configured; /api/insights will return 503")
	}

	// 5. Initialize Journal Service
	svc, err := app.NewJournalService(cfg, appLogger, repo, insightGen)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize journal service")
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}

	// 6. Initialize and start HTTP server
	srv, err := server.New(server.Config{
		Port:    cfg.Port,
		Logger:  appLogger,
		Service: svc,
		DevMode: cfg.DevMode,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize HTTP server")
		log.Fatalf("FATAL: Failed to initialize HTTP server: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error(context.Background(), err, "FATAL: HTTP server failed")
			log.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()
	appLogger.Info(context.Background(), "Server started", map[string]interface{}{"port": cfg.Port})

	// 7. Wait for interrupt signal and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info(context.Background(), "Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(ctx, err, "Server forced to shutdown")
	}
	appLogger.Info(context.Background(), "Server stopped")
}
